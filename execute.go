package refraction

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// execContext carries what a command list needs while a camera runs it.
type execContext struct {
	cam        *Camera
	backbuffer *ebiten.Image // the camera's viewport sub-image
	viewportW  int
	viewportH  int
	scene      *Scene
	params     ShaderGlobals // list-scoped parameters, reset per execution
	stats      *debugStats
}

// execute replays the list against ctx. Missing targets or materials are
// logged and skipped; execution never panics on bad input.
func (l *CommandList) execute(ctx *execContext) {
	ctx.params.Reset()
	for i := range l.commands {
		cmd := &l.commands[i]
		switch cmd.Op {
		case OpGetTemporary:
			l.getTemporary(ctx, cmd)
		case OpReleaseTemporary:
			l.releaseTemporary(ctx, cmd.Name)
		case OpBlit:
			l.blit(ctx, cmd)
		case OpSetVector:
			ctx.params.SetVector(cmd.Name, cmd.Vector)
		case OpSetFloat:
			ctx.params.SetFloat(cmd.Name, cmd.Float)
		case OpSetGlobalTexture:
			img, _ := l.resolve(ctx, cmd.Src)
			if img == nil {
				l.warnMissing(cmd, cmd.Src)
				continue
			}
			ctx.scene.globals.SetTexture(cmd.Name, img)
		}
		if ctx.stats != nil {
			ctx.stats.commandCount++
		}
	}
}

func (l *CommandList) getTemporary(ctx *execContext, cmd *Command) {
	w, h := cmd.Size.Resolve(ctx.viewportW, ctx.viewportH)
	if l.targets == nil {
		l.targets = make(map[string]*scratchTarget)
	}
	if t, ok := l.targets[cmd.Name]; ok {
		b := t.img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			t.filter = cmd.Filter
			return
		}
		// Viewport changed since the last frame: swap for a matching size.
		l.releaseTemporary(ctx, cmd.Name)
	}
	l.targets[cmd.Name] = &scratchTarget{
		img:    ctx.scene.rtPool.acquire(w, h),
		filter: cmd.Filter,
	}
}

func (l *CommandList) releaseTemporary(ctx *execContext, name string) {
	t, ok := l.targets[name]
	if !ok {
		return
	}
	ctx.scene.globals.forgetTexture(t.img)
	ctx.scene.rtPool.release(t.img)
	delete(l.targets, name)
}

// resolve returns the image behind id and the filter used when sampling it.
func (l *CommandList) resolve(ctx *execContext, id TargetID) (*ebiten.Image, FilterMode) {
	if id.IsBackbuffer() {
		return ctx.backbuffer, FilterBilinear
	}
	if t, ok := l.targets[id.name]; ok {
		return t.img, t.filter
	}
	return nil, FilterBilinear
}

func (l *CommandList) blit(ctx *execContext, cmd *Command) {
	src, filter := l.resolve(ctx, cmd.Src)
	if src == nil {
		l.warnMissing(cmd, cmd.Src)
		return
	}
	dst, _ := l.resolve(ctx, cmd.Dst)
	if dst == nil {
		l.warnMissing(cmd, cmd.Dst)
		return
	}
	if ctx.stats != nil {
		ctx.stats.blitCount++
	}
	if cmd.Material == nil {
		copyImage(src, dst, filter)
		return
	}
	shader := cmd.Material.Shader()
	if shader == nil {
		Logger().Warn("blit skipped: material has no shader",
			slog.String("list", l.Name), slog.String("src", cmd.Src.String()), slog.String("dst", cmd.Dst.String()))
		return
	}

	db := dst.Bounds()
	sb := src.Bounds()
	// DrawRectShader wants the source the same size as the region drawn.
	if sb.Dx() != db.Dx() || sb.Dy() != db.Dy() {
		scaled := ctx.scene.rtPool.acquire(db.Dx(), db.Dy())
		defer ctx.scene.rtPool.release(scaled)
		copyImage(src, scaled, filter)
		src = scaled
	}

	uniforms := cmd.Material.Uniforms(&ctx.scene.globals)
	for name, v := range ctx.params.floats {
		if _, own := cmd.Material.Float(name); !own {
			uniforms[uniformName(name)] = float32(v)
		}
	}
	for name, v := range ctx.params.vectors {
		if _, own := cmd.Material.Vector(name); !own {
			uniforms[uniformName(name)] = v.float32s()
		}
	}

	var op ebiten.DrawRectShaderOptions
	op.Images[0] = src
	op.Uniforms = uniforms
	op.Blend = ebiten.BlendCopy
	op.GeoM.Translate(float64(db.Min.X), float64(db.Min.Y))
	dst.DrawRectShader(db.Dx(), db.Dy(), shader.shader, &op)
}

func (l *CommandList) warnMissing(cmd *Command, id TargetID) {
	Logger().Warn("command skipped: target not declared",
		slog.String("list", l.Name), slog.String("op", cmd.Op.String()), slog.String("target", id.String()))
}

// copyImage scales src to fill dst, replacing dst's pixels.
func copyImage(src, dst *ebiten.Image, filter FilterMode) {
	sb := src.Bounds()
	db := dst.Bounds()
	if sb.Empty() || db.Empty() {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	op.GeoM.Translate(float64(db.Min.X), float64(db.Min.Y))
	op.Filter = filter.EbitenFilter()
	op.Blend = ebiten.BlendCopy
	dst.DrawImage(src, &op)
}
