package refraction

import (
	"log/slog"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// EffectState is the lifecycle state of a BlurRefraction.
type EffectState uint8

const (
	StateInactive EffectState = iota // disabled, detached, or owner inactive
	StateActive                      // enabled on an owner active in a scene
)

// String returns the state name.
func (s EffectState) String() string {
	if s == StateActive {
		return "active"
	}
	return "inactive"
}

// BlurRefraction is a node component that injects the two-tier blur command
// list into every camera that is about to draw its node. Lists are built
// once per camera and replayed every frame until a teardown, which happens
// whenever the effect is disabled, its node leaves the active hierarchy, or
// it is destroyed.
//
// The component is driven from the render loop and is not safe for
// concurrent use.
type BlurRefraction struct {
	owner     *Node
	shader    *Shader
	blurPower float64
	mode      RunMode
	enabled   bool
	state     EffectState

	// material is the shared blur-kernel material, created on the first
	// install and destroyed on every teardown.
	material *Material
	registry *observerRegistry
	builds   int

	powerTween *gween.Tween
}

// NewBlurRefraction creates an enabled effect. Attach it with
// Node.AddComponent; it activates when the node is active in a scene. A nil
// cfg.BlurShader selects BlurShader().
func NewBlurRefraction(cfg Config) *BlurRefraction {
	shader := cfg.BlurShader
	if shader == nil {
		shader = BlurShader()
	}
	return &BlurRefraction{
		shader:    shader,
		blurPower: cfg.BlurPower,
		mode:      cfg.Mode,
		enabled:   true,
		registry:  newObserverRegistry(StageAfterSkybox),
	}
}

func (e *BlurRefraction) setOwner(n *Node) {
	e.owner = n
}

// Owner returns the node the effect is attached to, or nil.
func (e *BlurRefraction) Owner() *Node {
	return e.owner
}

// --- Configuration ---

// SetBlurShader replaces the blur-kernel shader. Takes effect at the next
// teardown, when the material is recreated. A nil shader is a
// misconfiguration: installs are skipped and a warning is logged.
func (e *BlurRefraction) SetBlurShader(s *Shader) {
	e.shader = s
}

// SetBlurPower sets the blur-strength multiplier and cancels any running
// animation.
func (e *BlurRefraction) SetBlurPower(p float64) {
	e.blurPower = p
	e.powerTween = nil
}

// BlurPower returns the current blur-strength multiplier.
func (e *BlurRefraction) BlurPower() float64 {
	return e.blurPower
}

// AnimateBlurPower tweens the blur strength to target over duration seconds.
// The tween advances in Update.
func (e *BlurRefraction) AnimateBlurPower(target float64, duration float32, easeFn ease.TweenFunc) {
	e.powerTween = gween.New(float32(e.blurPower), float32(target), duration, easeFn)
}

// Animating reports whether a blur-strength tween is in progress.
func (e *BlurRefraction) Animating() bool {
	return e.powerTween != nil
}

// Update advances the blur-strength tween. Called from Scene.Update.
func (e *BlurRefraction) Update(dt float64) {
	if e.powerTween == nil {
		return
	}
	v, done := e.powerTween.Update(float32(dt))
	e.blurPower = float64(v)
	if done {
		e.powerTween = nil
	}
}

// --- Enable / disable ---

// SetEnabled enables or disables the effect. Disabling tears every
// installed list down; enabling on an active owner activates the effect.
func (e *BlurRefraction) SetEnabled(enabled bool) {
	if e.enabled == enabled {
		return
	}
	e.enabled = enabled
	if e.owner == nil || !e.owner.ActiveInHierarchy() {
		return
	}
	if enabled {
		e.OnEnable()
	} else {
		e.OnDisable()
	}
}

// Enabled reports the effect's own enabled flag.
func (e *BlurRefraction) Enabled() bool {
	return e.enabled
}

// State returns the lifecycle state.
func (e *BlurRefraction) State() EffectState {
	return e.state
}

// active reports whether the effect may install lists right now.
func (e *BlurRefraction) active() bool {
	return e.enabled && e.owner != nil && e.owner.ActiveInHierarchy()
}

// OnEnable starts from a clean slate and activates the effect if its owner
// is eligible for rendering. Lists are built lazily on observation.
func (e *BlurRefraction) OnEnable() {
	e.Cleanup()
	if e.active() {
		e.state = StateActive
	}
}

// OnDisable tears everything down.
func (e *BlurRefraction) OnDisable() {
	e.Cleanup()
	e.state = StateInactive
}

// OnDestroy tears everything down and stops the blur-strength tween.
func (e *BlurRefraction) OnDestroy() {
	e.Cleanup()
	e.state = StateInactive
	e.powerTween = nil
}

// --- Observation ---

// OnWillRenderObject handles the notification that cam is about to draw the
// owner. It installs the blur list on cam the first time; later frames
// reuse it. The blur strength is written on every call.
func (e *BlurRefraction) OnWillRenderObject(cam *Camera) {
	if !e.active() {
		e.Cleanup()
		e.state = StateInactive
		return
	}
	e.state = StateActive
	if !alive(cam) {
		return
	}

	e.writeBlurPower(cam)

	if e.registry.has(cam) {
		return
	}

	if e.material == nil {
		m, err := NewMaterial(e.shader)
		if err != nil {
			Logger().Warn("blur refraction: install skipped",
				slog.Uint64("camera", uint64(cam.ID())), slog.Any("error", err))
			return
		}
		e.material = m
	}

	w, h := cam.ViewportSize()
	list := BuildBlurCommandList(w, h, e.material)
	e.registry.install(cam, list)
	e.builds++
	emitEffectEvent(cam.scene, EffectEvent{
		Type:      EffectInstalled,
		NodeID:    e.owner.ID,
		CameraID:  cam.ID(),
		Observers: e.registry.size(),
	})
}

// writeBlurPower sends the blur strength to the sink selected by the mode.
func (e *BlurRefraction) writeBlurPower(cam *Camera) {
	switch e.mode {
	case ModeStatic:
		if cam.scene != nil {
			cam.scene.globals.SetFloat(BlurPowerParam, e.blurPower)
		}
	default:
		if e.owner.Material != nil {
			e.owner.Material.SetFloat(BlurPowerParam, e.blurPower)
		}
	}
}

// Cleanup detaches every installed list, releases their targets, and
// destroys the shared material. Safe to call repeatedly.
func (e *BlurRefraction) Cleanup() {
	var scenes []*Scene
	for _, entry := range e.registry.entries {
		if alive(entry.cam) && entry.cam.scene != nil {
			scenes = append(scenes, entry.cam.scene)
		}
	}
	detached := e.registry.teardownAll()
	if e.material != nil {
		e.material.Destroy()
		e.material = nil
	}
	if detached == 0 {
		return
	}
	Logger().Debug("blur refraction torn down", slog.Int("lists", detached))
	var nodeID uint32
	if e.owner != nil {
		nodeID = e.owner.ID
	}
	for _, s := range uniqueScenes(scenes) {
		emitEffectEvent(s, EffectEvent{Type: EffectTornDown, NodeID: nodeID, Observers: detached})
	}
}

// --- Introspection ---

// Material returns the shared blur material, or nil when none is alive.
func (e *BlurRefraction) Material() *Material {
	return e.material
}

// ObserverCount returns the number of cameras with an installed list.
func (e *BlurRefraction) ObserverCount() int {
	return e.registry.size()
}

// Installed reports whether a list is installed on cam.
func (e *BlurRefraction) Installed(cam *Camera) bool {
	return e.registry.has(cam)
}

// CommandList returns the list installed on cam, or nil.
func (e *BlurRefraction) CommandList(cam *Camera) *CommandList {
	return e.registry.commandList(cam)
}

// BuildCount returns how many lists the effect has built since creation.
func (e *BlurRefraction) BuildCount() int {
	return e.builds
}

func uniqueScenes(scenes []*Scene) []*Scene {
	out := scenes[:0]
	for _, s := range scenes {
		dup := false
		for _, o := range out {
			if o == s {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	return out
}
