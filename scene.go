package refraction

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree, cameras, shader
// globals and render buffers.
type Scene struct {
	// ClearColor fills each camera viewport before anything is drawn.
	ClearColor Color
	// CaptureDir is where Capture writes PNG files.
	CaptureDir string

	root  *Node
	store EntityStore
	debug bool

	cameras []*Camera

	// Render state
	globals    ShaderGlobals
	rtPool     targetPool
	rtDeferred []*ebiten.Image
	visible    []*Node
	exec       execContext

	captureQueue []string
	updateFunc   func() error
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	s := &Scene{
		ClearColor: Color{0, 0, 0, 1},
		CaptureDir: DefaultConfig().CaptureDir,
	}
	s.root = NewContainer("root")
	s.root.scene = s
	s.root.enabledNotified = true
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Globals returns the scene-wide shader parameter table.
func (s *Scene) Globals() *ShaderGlobals {
	return &s.globals
}

// Update advances camera and component animations by one tick.
func (s *Scene) Update() {
	s.UpdateWithDelta(1.0 / float64(ebiten.TPS()))
}

// UpdateWithDelta advances camera and component animations by dt seconds.
func (s *Scene) UpdateWithDelta(dt float64) {
	for _, cam := range s.cameras {
		cam.update(float32(dt))
	}
	updateComponents(s.root, dt)
}

func updateComponents(n *Node, dt float64) {
	if !n.active {
		return
	}
	for _, c := range n.components {
		if u, ok := c.(Updater); ok {
			u.Update(dt)
		}
	}
	for _, child := range n.children {
		updateComponents(child, dt)
	}
}

// Draw renders every camera into its viewport of screen. For each camera,
// nodes it sees are notified first, then the frame runs: clear, opaque,
// skybox, transparent, with attached command lists at the stage boundaries.
func (s *Scene) Draw(screen *ebiten.Image) {
	updateWorldTransform(s.root, identityTransform, 1)
	for i := 0; i < len(s.cameras); i++ {
		cam := s.cameras[i]
		if !alive(cam) {
			continue
		}
		s.drawWithCamera(screen, cam)
	}
	s.flushCaptures(screen)
}

// drawWithCamera runs one camera frame.
func (s *Scene) drawWithCamera(screen *ebiten.Image, cam *Camera) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	view := cam.computeViewMatrix()
	s.visible = s.collectVisible(s.visible[:0], s.root, cam, view)

	for _, n := range s.visible {
		for _, c := range n.components {
			if o, ok := c.(WillRenderObserver); ok {
				o.OnWillRenderObject(cam)
			}
		}
	}
	// A notification may dispose the camera or move nodes out of the tree.
	if !alive(cam) {
		return
	}

	vw, vh := cam.ViewportSize()
	vx, vy := int(cam.Viewport.X), int(cam.Viewport.Y)
	target, ok := screen.SubImage(image.Rect(vx, vy, vx+vw, vy+vh)).(*ebiten.Image)
	if !ok || target.Bounds().Empty() {
		return
	}
	target.Fill(s.ClearColor.toRGBA())

	s.exec = execContext{
		cam:        cam,
		backbuffer: target,
		viewportW:  vw,
		viewportH:  vh,
		scene:      s,
	}
	if s.debug {
		s.exec.stats = &stats
	}

	s.runStage(cam, StageBeforeOpaque)
	s.drawLayer(target, LayerOpaque, view, &stats)
	s.runStage(cam, StageAfterOpaque)
	s.drawLayer(target, LayerSkybox, view, &stats)
	s.runStage(cam, StageAfterSkybox)
	s.drawLayer(target, LayerTransparent, view, &stats)
	s.runStage(cam, StageAfterTransparent)

	for _, img := range s.rtDeferred {
		s.rtPool.release(img)
	}
	s.rtDeferred = s.rtDeferred[:0]

	if s.debug {
		stats.frameTime = time.Since(t0)
		s.debugLog(cam, stats)
	}
	s.exec = execContext{}
}

func (s *Scene) runStage(cam *Camera, stage Stage) {
	for _, l := range cam.CommandLists(stage) {
		if s.exec.stats != nil {
			s.exec.stats.listCount++
		}
		l.execute(&s.exec)
	}
}

// collectVisible appends, in tree order, every node cam can see: active,
// visible, renderable, with an image that intersects the viewport.
func (s *Scene) collectVisible(buf []*Node, n *Node, cam *Camera, view [6]float64) []*Node {
	if !n.active || !n.Visible {
		return buf
	}
	if n.Renderable && n.Image != nil {
		w, h := nodeSize(n)
		if worldAABB(multiplyAffine(view, n.worldTransform), w, h).Intersects(cam.Viewport) {
			buf = append(buf, n)
		}
	}
	for _, child := range n.children {
		buf = s.collectVisible(buf, child, cam, view)
	}
	return buf
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	cam.scene = s
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the scene and disposes it.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			cam.Dispose()
			return
		}
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables per-camera frame stats, logged at debug
// level through Logger.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Dispose disposes every camera, the node tree, and all pooled images.
func (s *Scene) Dispose() {
	for _, cam := range s.cameras {
		cam.Dispose()
	}
	s.cameras = nil
	for _, child := range append([]*Node(nil), s.root.children...) {
		child.Dispose()
	}
	s.globals.Reset()
	s.rtPool.drain()
}
