package refraction

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// cameraIDCounter is a plain counter (the scene is single-threaded).
var cameraIDCounter uint32

// Camera is a rendering viewpoint. Each camera draws the scene into its own
// viewport and runs the command lists attached to it at fixed stages of its
// frame.
type Camera struct {
	// Name is used in logs.
	Name string
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	id    uint32
	scene *Scene

	lists [stageCount][]*CommandList

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	scrollTween *scrollAnim
	disposed    bool
}

// newCamera creates a Camera with default values and the given viewport.
func newCamera(viewport Rect) *Camera {
	cameraIDCounter++
	return &Camera{
		Zoom:     1.0,
		Viewport: viewport,
		id:       cameraIDCounter,
		dirty:    true,
	}
}

// ID returns the camera's identity, stable for its whole life and never reused.
func (c *Camera) ID() uint32 {
	return c.id
}

// ViewportSize returns the viewport dimensions in whole pixels.
func (c *Camera) ViewportSize() (w, h int) {
	w = int(math.Round(c.Viewport.Width))
	h = int(math.Round(c.Viewport.Height))
	return max(w, 0), max(h, 0)
}

// --- Command lists ---

// AddCommandList attaches list to run at stage every frame this camera draws.
// Adding the same list twice at the same stage is a no-op.
func (c *Camera) AddCommandList(stage Stage, list *CommandList) {
	if c.disposed || list == nil || stage >= stageCount {
		return
	}
	for _, l := range c.lists[stage] {
		if l == list {
			return
		}
	}
	c.lists[stage] = append(c.lists[stage], list)
}

// RemoveCommandList detaches list from stage and returns the scratch targets
// it retained to the scene's pool.
func (c *Camera) RemoveCommandList(stage Stage, list *CommandList) {
	if stage >= stageCount {
		return
	}
	lists := c.lists[stage]
	for i, l := range lists {
		if l != list {
			continue
		}
		copy(lists[i:], lists[i+1:])
		lists[len(lists)-1] = nil
		c.lists[stage] = lists[:len(lists)-1]
		list.releaseTargets(c.scene)
		return
	}
}

// CommandLists returns the lists attached at stage. The returned slice MUST
// NOT be mutated.
func (c *Camera) CommandLists(stage Stage) []*CommandList {
	if stage >= stageCount {
		return nil
	}
	return c.lists[stage]
}

// --- Lifetime ---

// Dispose detaches every command list, releases their targets, and marks the
// camera dead. Disposed cameras are never drawn; holders of a reference must
// check IsDisposed before use.
func (c *Camera) Dispose() {
	if c.disposed {
		return
	}
	for stage := range c.lists {
		for _, l := range c.lists[stage] {
			l.releaseTargets(c.scene)
		}
		c.lists[stage] = nil
	}
	c.scrollTween = nil
	c.disposed = true
}

// IsDisposed reports whether the camera has been disposed.
func (c *Camera) IsDisposed() bool {
	return c.disposed
}

// alive reports whether cam can be used. A nil camera is not alive.
func alive(cam *Camera) bool {
	return cam != nil && !cam.disposed
}

// --- Movement ---

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// update advances scroll animation. Called from Scene.Update.
func (c *Camera) update(dt float32) {
	if c.scrollTween == nil {
		return
	}
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		c.X = float64(val)
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		c.Y = float64(val)
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
	c.dirty = true
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.Zoom
	c.viewMatrix = [6]float64{z, 0, 0, z, cx - z*c.X, cy - z*c.Y}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// MarkDirty forces a recomputation of the view matrix. Call it after
// changing X, Y, Zoom or Viewport directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}
