package refraction

import (
	"math"
	"testing"
)

func testBlurMaterial(t *testing.T) *Material {
	t.Helper()
	m, err := NewMaterial(&Shader{name: "test"})
	if err != nil {
		t.Fatalf("NewMaterial: %v", err)
	}
	return m
}

func TestBuildBlurCommandListSequence(t *testing.T) {
	m := testBlurMaterial(t)
	l := BuildBlurCommandList(640, 480, m)

	if l.Name != BlurCommandListTag {
		t.Errorf("Name = %q, want %q", l.Name, BlurCommandListTag)
	}

	type step struct {
		op       OpCode
		name     string
		src, dst string
		material bool
	}
	bb := Backbuffer.String()
	want := []step{
		{op: OpGetTemporary, name: ScreenCopyTexture},
		{op: OpBlit, src: bb, dst: ScreenCopyTexture},
		{op: OpGetTemporary, name: BlurTemp1},
		{op: OpGetTemporary, name: BlurTemp2},
		{op: OpGetTemporary, name: BlurTemp3},
		{op: OpBlit, src: ScreenCopyTexture, dst: BlurTemp1},
		{op: OpReleaseTemporary, name: ScreenCopyTexture},
		{op: OpBlit, src: BlurTemp1, dst: BlurTemp2},
	}
	for i := 0; i < tier1Iterations; i++ {
		want = append(want,
			step{op: OpSetVector, name: BlurOffsetsParam},
			step{op: OpBlit, src: BlurTemp1, dst: BlurTemp3, material: true},
			step{op: OpSetVector, name: BlurOffsetsParam},
			step{op: OpBlit, src: BlurTemp3, dst: BlurTemp1, material: true},
		)
	}
	for i := 0; i < tier2Iterations; i++ {
		want = append(want,
			step{op: OpSetVector, name: BlurOffsetsParam},
			step{op: OpBlit, src: BlurTemp2, dst: BlurTemp3, material: true},
			step{op: OpSetVector, name: BlurOffsetsParam},
			step{op: OpBlit, src: BlurTemp3, dst: BlurTemp2, material: true},
		)
	}
	want = append(want,
		step{op: OpSetGlobalTexture, name: GrabBlurTexture1, src: BlurTemp1},
		step{op: OpSetGlobalTexture, name: GrabBlurTexture2, src: BlurTemp2},
	)

	cmds := l.Commands()
	if len(cmds) != len(want) {
		t.Fatalf("command count = %d, want %d", len(cmds), len(want))
	}
	for i, w := range want {
		c := cmds[i]
		if c.Op != w.op {
			t.Errorf("cmd[%d].Op = %v, want %v", i, c.Op, w.op)
			continue
		}
		switch c.Op {
		case OpGetTemporary, OpReleaseTemporary, OpSetVector:
			if c.Name != w.name {
				t.Errorf("cmd[%d].Name = %q, want %q", i, c.Name, w.name)
			}
		case OpBlit:
			if c.Src.String() != w.src || c.Dst.String() != w.dst {
				t.Errorf("cmd[%d] blit %s -> %s, want %s -> %s", i, c.Src, c.Dst, w.src, w.dst)
			}
			if (c.Material != nil) != w.material {
				t.Errorf("cmd[%d] material = %v, want material %v", i, c.Material != nil, w.material)
			}
			if w.material && c.Material != m {
				t.Errorf("cmd[%d] material is not the supplied blur material", i)
			}
		case OpSetGlobalTexture:
			if c.Name != w.name || c.Src.String() != w.src {
				t.Errorf("cmd[%d] publish %q from %s, want %q from %s", i, c.Name, c.Src, w.name, w.src)
			}
		}
	}
}

func TestBuildBlurCommandListTargetSizes(t *testing.T) {
	l := BuildBlurCommandList(640, 480, testBlurMaterial(t))
	sizes := map[string]int{}
	for _, c := range l.Commands() {
		if c.Op != OpGetTemporary {
			continue
		}
		sizes[c.Name] = c.Size.Divisor()
		if c.Filter != FilterBilinear {
			t.Errorf("%s filter = %v, want bilinear", c.Name, c.Filter)
		}
	}
	want := map[string]int{ScreenCopyTexture: 1, BlurTemp1: 2, BlurTemp2: 2, BlurTemp3: 2}
	for name, d := range want {
		if sizes[name] != d {
			t.Errorf("%s divisor = %d, want %d", name, sizes[name], d)
		}
	}
}

func TestBuildBlurCommandListTiersNotReleased(t *testing.T) {
	l := BuildBlurCommandList(640, 480, testBlurMaterial(t))
	for _, c := range l.Commands() {
		if c.Op == OpReleaseTemporary && c.Name != ScreenCopyTexture {
			t.Errorf("unexpected release of %q", c.Name)
		}
	}
}

// blurOffsets returns the offsets vectors recorded before each material
// blit into or out of tier, in order.
func blurOffsets(l *CommandList, tier string) []Vec4 {
	var out []Vec4
	var pending Vec4
	for _, c := range l.Commands() {
		switch c.Op {
		case OpSetVector:
			if c.Name == BlurOffsetsParam {
				pending = c.Vector
			}
		case OpBlit:
			if c.Material != nil && (c.Src.Name() == tier || c.Dst.Name() == tier) {
				out = append(out, pending)
			}
		}
	}
	return out
}

func TestBlurTierIterationsAndOffsets(t *testing.T) {
	const w, h = 640.0, 480.0
	l := BuildBlurCommandList(int(w), int(h), testBlurMaterial(t))

	tests := []struct {
		tier       string
		iterations int
	}{
		{BlurTemp1, 2},
		{BlurTemp2, 4},
	}
	for _, tt := range tests {
		got := blurOffsets(l, tt.tier)
		if len(got) != 2*tt.iterations {
			t.Fatalf("%s: material blits = %d, want %d", tt.tier, len(got), 2*tt.iterations)
		}
		for i := 0; i < tt.iterations; i++ {
			m := math.Pow(2, float64(i+1))
			horiz, vert := got[2*i], got[2*i+1]
			if horiz != (Vec4{X: m / w}) {
				t.Errorf("%s iter %d horizontal = %+v, want {%v 0 0 0}", tt.tier, i, horiz, m/w)
			}
			if vert != (Vec4{Y: m / h}) {
				t.Errorf("%s iter %d vertical = %+v, want {0 %v 0 0}", tt.tier, i, vert, m/h)
			}
		}
	}
}

func TestBlurOffset(t *testing.T) {
	want := []float64{2, 4, 8, 16}
	for i, w := range want {
		if got := blurOffset(i); got != w {
			t.Errorf("blurOffset(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestBuildBlurCommandListResolutions(t *testing.T) {
	tests := []struct {
		w, h int
	}{
		{640, 480},
		{1920, 1080},
		{1, 1},
		{0, 0},
		{0, 720},
	}
	for _, tt := range tests {
		l := BuildBlurCommandList(tt.w, tt.h, testBlurMaterial(t))
		if l.Len() != BuildBlurCommandList(640, 480, testBlurMaterial(t)).Len() {
			t.Errorf("%dx%d: command count differs", tt.w, tt.h)
		}
		for _, c := range l.Commands() {
			if c.Op != OpSetVector {
				continue
			}
			for _, v := range []float64{c.Vector.X, c.Vector.Y, c.Vector.Z, c.Vector.W} {
				if math.IsInf(v, 0) || math.IsNaN(v) {
					t.Errorf("%dx%d: non-finite offset %+v", tt.w, tt.h, c.Vector)
				}
			}
		}
		for _, c := range l.Commands() {
			if c.Op != OpGetTemporary {
				continue
			}
			rw, rh := c.Size.Resolve(tt.w, tt.h)
			if rw < 1 || rh < 1 {
				t.Errorf("%dx%d: %s resolves to %dx%d", tt.w, tt.h, c.Name, rw, rh)
			}
		}
	}
}

func TestBuildBlurCommandListFullHDOffsets(t *testing.T) {
	l := BuildBlurCommandList(1920, 1080, testBlurMaterial(t))
	got := blurOffsets(l, BlurTemp2)
	if got[0].X != 2.0/1920 {
		t.Errorf("first horizontal offset = %v, want %v", got[0].X, 2.0/1920)
	}
	if got[7].Y != 16.0/1080 {
		t.Errorf("last vertical offset = %v, want %v", got[7].Y, 16.0/1080)
	}
}
