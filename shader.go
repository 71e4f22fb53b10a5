package refraction

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Kage shader sources ---
// All shaders use //kage:unit pixels. Ebitengine uses premultiplied alpha.

// blurShaderSrc is a 7-tap separable blur. Offsets.xy is the tap step as a
// fraction of the source size, so one direction is zero per pass.
const blurShaderSrc = `//kage:unit pixels
package main

var Offsets vec4

func tap(p vec2) vec4 {
	o := imageSrc0Origin()
	s := imageSrc0Size()
	return imageSrc0At(clamp(p, o+0.5, o+s-0.5))
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	step := Offsets.xy * imageSrc0Size()
	c := tap(src) * 0.40
	c += tap(src+step) * 0.15
	c += tap(src-step) * 0.15
	c += tap(src+step*2) * 0.10
	c += tap(src-step*2) * 0.10
	c += tap(src+step*3) * 0.05
	c += tap(src-step*3) * 0.05
	return c
}
`

// refractionShaderSrc samples the two published blur tiers behind the
// object. Images[0] is the object (its alpha is the coverage, its color the
// tint), Images[1] and Images[2] are the tier crops under it.
const refractionShaderSrc = `//kage:unit pixels
package main

var BlurPower float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	m := imageSrc0At(src)
	if m.a == 0 {
		return vec4(0)
	}
	local := src - imageSrc0Origin()
	light := imageSrc1At(local + imageSrc1Origin())
	heavy := imageSrc2At(local + imageSrc2Origin())
	t := clamp(BlurPower*0.5, 0, 1)
	grab := light*(1-t) + heavy*t
	tint := m.rgb / m.a
	return vec4(grab.rgb*tint, 1) * m.a * color.a
}
`

// Shader is a compiled Kage program with a name for logs.
type Shader struct {
	name   string
	shader *ebiten.Shader
}

// NewShader compiles a Kage program.
func NewShader(name string, src []byte) (*Shader, error) {
	s, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("compile shader %s: %w", name, err)
	}
	return &Shader{name: name, shader: s}, nil
}

// Name returns the name given at construction.
func (s *Shader) Name() string {
	return s.name
}

// --- Lazy built-in compilation (the scene is single-threaded) ---

var (
	blurShader       *Shader
	refractionShader *Shader
)

// BlurShader returns the built-in directional blur kernel. It reads the
// list-scoped vector "offsets".
func BlurShader() *Shader {
	if blurShader == nil {
		s, err := NewShader("separable-blur", []byte(blurShaderSrc))
		if err != nil {
			panic("refraction: " + err.Error())
		}
		blurShader = s
	}
	return blurShader
}

// RefractionShader returns the built-in consumer of the two blur tiers. It
// reads _BlurPower.
func RefractionShader() *Shader {
	if refractionShader == nil {
		s, err := NewShader("blurry-refraction", []byte(refractionShaderSrc))
		if err != nil {
			panic("refraction: " + err.Error())
		}
		refractionShader = s
	}
	return refractionShader
}
