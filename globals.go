package refraction

import "github.com/hajimehoshi/ebiten/v2"

// ShaderGlobals is a table of named shader parameters visible to every draw
// in a scene. Command lists publish into it while they execute; materials
// fall back to it for uniforms they do not set themselves.
type ShaderGlobals struct {
	floats   map[string]float64
	vectors  map[string]Vec4
	textures map[string]*ebiten.Image
}

// SetFloat sets a named scalar.
func (g *ShaderGlobals) SetFloat(name string, v float64) {
	if g.floats == nil {
		g.floats = make(map[string]float64)
	}
	g.floats[name] = v
}

// Float returns a named scalar and whether it is set.
func (g *ShaderGlobals) Float(name string) (float64, bool) {
	v, ok := g.floats[name]
	return v, ok
}

// SetVector sets a named vector.
func (g *ShaderGlobals) SetVector(name string, v Vec4) {
	if g.vectors == nil {
		g.vectors = make(map[string]Vec4)
	}
	g.vectors[name] = v
}

// Vector returns a named vector and whether it is set.
func (g *ShaderGlobals) Vector(name string) (Vec4, bool) {
	v, ok := g.vectors[name]
	return v, ok
}

// SetTexture publishes img under name. A nil image removes the entry.
func (g *ShaderGlobals) SetTexture(name string, img *ebiten.Image) {
	if img == nil {
		delete(g.textures, name)
		return
	}
	if g.textures == nil {
		g.textures = make(map[string]*ebiten.Image)
	}
	g.textures[name] = img
}

// Texture returns the image published under name, or nil.
func (g *ShaderGlobals) Texture(name string) *ebiten.Image {
	return g.textures[name]
}

// TextureNames returns the names of all published textures in no particular order.
func (g *ShaderGlobals) TextureNames() []string {
	names := make([]string, 0, len(g.textures))
	for name := range g.textures {
		names = append(names, name)
	}
	return names
}

// Reset clears every parameter.
func (g *ShaderGlobals) Reset() {
	clear(g.floats)
	clear(g.vectors)
	clear(g.textures)
}

// forgetTexture drops every entry that points at img. Used when a pooled
// target goes back to the pool so no draw samples a recycled image.
func (g *ShaderGlobals) forgetTexture(img *ebiten.Image) {
	for name, t := range g.textures {
		if t == img {
			delete(g.textures, name)
		}
	}
}
