package refraction

import (
	"errors"
	"strings"
	"unicode"
)

// ErrNilShader is returned when a material is created without a shader.
var ErrNilShader = errors.New("refraction: nil shader")

// Material binds a shader to a set of named properties. Property names use
// the shader-property form ("_BlurPower", "offsets"); they are mapped to
// exported Kage uniform names ("BlurPower", "Offsets") at draw time.
type Material struct {
	shader    *Shader
	floats    map[string]float64
	vectors   map[string]Vec4
	destroyed bool
}

// NewMaterial creates a material for shader.
func NewMaterial(shader *Shader) (*Material, error) {
	if shader == nil {
		return nil, ErrNilShader
	}
	return &Material{shader: shader}, nil
}

// Shader returns the material's shader, or nil once destroyed.
func (m *Material) Shader() *Shader {
	if m.destroyed {
		return nil
	}
	return m.shader
}

// SetFloat sets a scalar property. No-op on a destroyed material.
func (m *Material) SetFloat(name string, v float64) {
	if m.destroyed {
		return
	}
	if m.floats == nil {
		m.floats = make(map[string]float64)
	}
	m.floats[name] = v
}

// Float returns a scalar property and whether it is set.
func (m *Material) Float(name string) (float64, bool) {
	v, ok := m.floats[name]
	return v, ok
}

// SetVector sets a vector property. No-op on a destroyed material.
func (m *Material) SetVector(name string, v Vec4) {
	if m.destroyed {
		return
	}
	if m.vectors == nil {
		m.vectors = make(map[string]Vec4)
	}
	m.vectors[name] = v
}

// Vector returns a vector property and whether it is set.
func (m *Material) Vector(name string) (Vec4, bool) {
	v, ok := m.vectors[name]
	return v, ok
}

// Destroy drops every property and the shader reference. A destroyed
// material cannot be drawn with.
func (m *Material) Destroy() {
	m.destroyed = true
	m.shader = nil
	m.floats = nil
	m.vectors = nil
}

// IsDestroyed reports whether Destroy has been called.
func (m *Material) IsDestroyed() bool {
	return m.destroyed
}

// Uniforms builds the uniform map for a draw. Globals come first and
// material properties override them; extra names are ignored by ebiten.
func (m *Material) Uniforms(globals *ShaderGlobals) map[string]any {
	u := make(map[string]any, len(m.floats)+len(m.vectors))
	if globals != nil {
		for name, v := range globals.floats {
			u[uniformName(name)] = float32(v)
		}
		for name, v := range globals.vectors {
			u[uniformName(name)] = v.float32s()
		}
	}
	for name, v := range m.floats {
		u[uniformName(name)] = float32(v)
	}
	for name, v := range m.vectors {
		u[uniformName(name)] = v.float32s()
	}
	return u
}

// uniformName maps a shader-property name to a Kage uniform name: leading
// underscores are dropped and the first letter is upper-cased.
func uniformName(prop string) string {
	s := strings.TrimLeft(prop, "_")
	if s == "" {
		return prop
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
