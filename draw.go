package refraction

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// drawLayer draws every visible node of the given layer in tree order.
func (s *Scene) drawLayer(target *ebiten.Image, layer Layer, view [6]float64, stats *debugStats) {
	for _, n := range s.visible {
		if n.Layer != layer || n.disposed {
			continue
		}
		s.drawNode(target, n, view)
		stats.drawCallCount++
	}
}

func (s *Scene) drawNode(target *ebiten.Image, n *Node, view [6]float64) {
	m := multiplyAffine(view, n.worldTransform)
	if n.Layer == LayerTransparent && n.Material != nil && s.drawRefractive(target, n, m) {
		return
	}

	var op ebiten.DrawImageOptions
	op.GeoM = geoM(m)
	a := n.Color.A * n.worldAlpha
	op.ColorScale.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
	op.Filter = ebiten.FilterLinear
	if n.Layer == LayerSkybox {
		op.Blend = BlendBelow.EbitenBlend()
	} else {
		op.Blend = n.BlendMode.EbitenBlend()
	}
	target.DrawImage(n.Image, &op)
}

// drawRefractive draws n with its material, feeding the published blur
// tiers as images 1 and 2. Each tier is cropped to the pixels behind the
// node so all three images share the node's size. It reports false when the
// tiers are not published or the material is unusable, in which case the
// caller falls back to a plain draw.
func (s *Scene) drawRefractive(target *ebiten.Image, n *Node, m [6]float64) bool {
	shader := n.Material.Shader()
	if shader == nil {
		return false
	}
	tier1 := s.globals.Texture(GrabBlurTexture1)
	tier2 := s.globals.Texture(GrabBlurTexture2)
	if tier1 == nil || tier2 == nil {
		return false
	}
	inv := invertAffine(m)
	b := n.Image.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return false
	}

	tb := target.Bounds()
	crop1 := s.cropTier(tier1, inv, tb.Min.X, tb.Min.Y, tb.Dx(), tb.Dy(), w, h)
	crop2 := s.cropTier(tier2, inv, tb.Min.X, tb.Min.Y, tb.Dx(), tb.Dy(), w, h)

	var op ebiten.DrawRectShaderOptions
	op.GeoM = geoM(m)
	op.Images[0] = n.Image
	op.Images[1] = crop1
	op.Images[2] = crop2
	op.Uniforms = n.Material.Uniforms(&s.globals)
	a := n.Color.A * n.worldAlpha
	op.ColorScale.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
	op.Blend = n.BlendMode.EbitenBlend()
	target.DrawRectShader(w, h, shader.shader, &op)
	return true
}

// cropTier resamples the part of tier lying behind a w×h node into a pooled
// image of the node's size. inv maps screen space to node-local space; the
// tier covers the viewport at (vx, vy) of size vw×vh at a lower resolution.
// The crop goes back to the pool at the end of the camera frame.
func (s *Scene) cropTier(tier *ebiten.Image, inv [6]float64, vx, vy, vw, vh, w, h int) *ebiten.Image {
	crop := s.rtPool.acquire(w, h)
	s.rtDeferred = append(s.rtDeferred, crop)

	tb := tier.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(vw)/float64(tb.Dx()), float64(vh)/float64(tb.Dy()))
	op.GeoM.Translate(float64(vx), float64(vy))
	op.GeoM.Concat(geoM(inv))
	op.Filter = ebiten.FilterLinear
	op.Blend = ebiten.BlendCopy
	crop.DrawImage(tier, &op)
	return crop
}
