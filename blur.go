package refraction

// Shader-property names shared by the blur list and the refraction shader.
const (
	ScreenCopyTexture  = "_ScreenCopyTexture"
	BlurTemp1          = "_Temp1"
	BlurTemp2          = "_Temp2"
	BlurTemp3          = "_Temp3"
	GrabBlurTexture1   = "_GrabBlurTexture1" // tier-1 (light) blur
	GrabBlurTexture2   = "_GrabBlurTexture2" // tier-2 (heavy) blur
	BlurOffsetsParam   = "offsets"
	BlurPowerParam     = "_BlurPower"
	BlurCommandListTag = "Grab screen and blur"
)

// Iteration counts of the two refinement passes.
const (
	tier1Iterations = 2
	tier2Iterations = 4
)

// BuildBlurCommandList records the two-tier blur pyramid for a viewport of
// viewportW×viewportH pixels. blur is the directional kernel material; it is
// referenced, not copied, so destroying it disables the recorded blits.
//
// The list grabs the backbuffer, downsamples it into two half-resolution
// tiers, blurs tier 1 twice and tier 2 four times with doubling offsets, and
// publishes both tiers as GrabBlurTexture1 and GrabBlurTexture2. The tiers
// are not released inside the list; they live until the list is detached.
func BuildBlurCommandList(viewportW, viewportH int, blur *Material) *CommandList {
	// Offsets divide by the viewport; a minimized window reports 0.
	w := float64(max(viewportW, 1))
	h := float64(max(viewportH, 1))

	l := NewCommandList(BlurCommandListTag)
	screenCopy := Target(ScreenCopyTexture)
	t1 := Target(BlurTemp1)
	t2 := Target(BlurTemp2)
	t3 := Target(BlurTemp3)

	l.GetTemporaryTarget(ScreenCopyTexture, FullResolution(), FilterBilinear)
	l.Blit(Backbuffer, screenCopy)

	l.GetTemporaryTarget(BlurTemp1, Downsample(2), FilterBilinear)
	l.GetTemporaryTarget(BlurTemp2, Downsample(2), FilterBilinear)
	l.GetTemporaryTarget(BlurTemp3, Downsample(2), FilterBilinear)

	l.Blit(screenCopy, t1)
	l.ReleaseTemporaryTarget(ScreenCopyTexture)
	l.Blit(t1, t2)

	recordBlurPasses(l, t1, t3, tier1Iterations, w, h, blur)
	recordBlurPasses(l, t2, t3, tier2Iterations, w, h, blur)

	l.SetGlobalTexture(GrabBlurTexture1, t1)
	l.SetGlobalTexture(GrabBlurTexture2, t2)
	return l
}

// recordBlurPasses appends iterations horizontal+vertical pairs that blur
// tier in place, using ping as the intermediate. Iteration i steps by
// 2^(i+1) pixels of the full-resolution viewport.
func recordBlurPasses(l *CommandList, tier, ping TargetID, iterations int, w, h float64, blur *Material) {
	for i := 0; i < iterations; i++ {
		offset := blurOffset(i)
		l.SetVector(BlurOffsetsParam, Vec4{X: offset / w})
		l.BlitMaterial(tier, ping, blur)
		l.SetVector(BlurOffsetsParam, Vec4{Y: offset / h})
		l.BlitMaterial(ping, tier, blur)
	}
}

// blurOffset returns the offset magnitude of iteration i.
func blurOffset(i int) float64 {
	return float64(int(1) << (i + 1))
}
