package refraction

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts c to a premultiplied color.RGBA for image.Fill.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec4 is a four-component shader vector. Command lists use it for
// list-scoped vector parameters such as the blur direction.
type Vec4 struct {
	X, Y, Z, W float64
}

// float32s converts the vector into the []float32 form ebiten expects for a
// vec4 uniform.
func (v Vec4) float32s() []float32 {
	return []float32{float32(v.X), float32(v.Y), float32(v.Z), float32(v.W)}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// FilterMode selects how a scratch target is sampled when it is the source of
// a blit. Each maps to an ebiten.Filter.
type FilterMode uint8

const (
	FilterBilinear FilterMode = iota // linear interpolation (default for scratch targets)
	FilterPoint                      // nearest neighbour
)

// EbitenFilter returns the ebiten.Filter corresponding to this FilterMode.
func (f FilterMode) EbitenFilter() ebiten.Filter {
	if f == FilterPoint {
		return ebiten.FilterNearest
	}
	return ebiten.FilterLinear
}

// String returns the filter mode name.
func (f FilterMode) String() string {
	if f == FilterPoint {
		return "point"
	}
	return "bilinear"
}

// Layer selects the pass a node is drawn in.
type Layer uint8

const (
	LayerOpaque      Layer = iota // drawn first, over the clear color
	LayerSkybox                   // drawn behind opaque content (destination-over)
	LayerTransparent              // drawn after the after-skybox command lists
)

// Stage names a point in a camera frame at which attached command lists run.
type Stage uint8

const (
	StageBeforeOpaque     Stage = iota // after clear, before opaque nodes
	StageAfterOpaque                   // after opaque nodes, before the skybox
	StageAfterSkybox                   // after opaque and skybox, before transparent nodes
	StageAfterTransparent              // after everything else

	stageCount
)

// String returns the stage name used in logs.
func (s Stage) String() string {
	switch s {
	case StageBeforeOpaque:
		return "before-opaque"
	case StageAfterOpaque:
		return "after-opaque"
	case StageAfterSkybox:
		return "after-skybox"
	case StageAfterTransparent:
		return "after-transparent"
	default:
		return "unknown"
	}
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
	BlendBelow                   // destination-over (draw behind existing content)
	BlendNone                    // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendBelow:
		return ebiten.BlendDestinationOver
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}
