package refraction

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Size policy ---

// SizePolicy sizes a scratch target relative to the viewport of the camera
// executing the command list. The zero value is full resolution.
type SizePolicy struct {
	shift uint8 // divisor is 1<<shift
}

// FullResolution sizes a target exactly like the viewport.
func FullResolution() SizePolicy {
	return SizePolicy{}
}

// Downsample sizes a target as ceil(viewport/factor). factor is rounded up
// to a power of two; values below 2 mean full resolution.
func Downsample(factor int) SizePolicy {
	var shift uint8
	for f := 1; f < factor && shift < 16; f <<= 1 {
		shift++
	}
	return SizePolicy{shift: shift}
}

// Divisor returns the power-of-two divisor applied to the viewport.
func (p SizePolicy) Divisor() int {
	return 1 << p.shift
}

// Resolve returns the target size for a viewport. Both dimensions are at
// least 1, so a minimized window or a degenerate camera still yields a
// usable target.
func (p SizePolicy) Resolve(viewportW, viewportH int) (w, h int) {
	d := p.Divisor()
	w = (max(viewportW, 1) + d - 1) / d
	h = (max(viewportH, 1) + d - 1) / d
	return max(w, 1), max(h, 1)
}

// --- Render target pool ---

// targetPool manages reusable offscreen ebiten.Images keyed by exact
// dimensions. After warmup, acquire/release are zero-alloc.
type targetPool struct {
	buckets map[uint64][]*ebiten.Image
	live    int // images handed out and not yet returned
}

// poolKey packs width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// acquire returns a cleared offscreen image of exactly (w, h) pixels.
func (p *targetPool) acquire(w, h int) *ebiten.Image {
	w, h = max(w, 1), max(h, 1)
	key := poolKey(w, h)
	p.live++
	if stack := p.buckets[key]; len(stack) > 0 {
		img := stack[len(stack)-1]
		p.buckets[key] = stack[:len(stack)-1]
		img.Clear()
		return img
	}
	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, w, h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// release returns an image to the pool. The image is cleared on next
// acquire, not here.
func (p *targetPool) release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())
	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
	if p.live > 0 {
		p.live--
	}
}

// idle returns the number of pooled images waiting for reuse.
func (p *targetPool) idle() int {
	n := 0
	for _, stack := range p.buckets {
		n += len(stack)
	}
	return n
}

// drain deallocates every pooled image.
func (p *targetPool) drain() {
	for key, stack := range p.buckets {
		for _, img := range stack {
			img.Deallocate()
		}
		delete(p.buckets, key)
	}
}
