package refraction

// EntityStore is the interface for optional ECS integration. When set on a
// Scene, effect lifecycle events are forwarded to it.
type EntityStore interface {
	EmitEvent(event EffectEvent)
}

// EffectEventType identifies a lifecycle event.
type EffectEventType uint8

const (
	EffectInstalled EffectEventType = iota // a command list was installed on a camera
	EffectTornDown                         // every installed list was detached
)

// String returns the event type name.
func (t EffectEventType) String() string {
	if t == EffectTornDown {
		return "torn-down"
	}
	return "installed"
}

// EffectEvent carries lifecycle data for the ECS bridge.
type EffectEvent struct {
	Type EffectEventType
	// NodeID is the owning node.
	NodeID uint32
	// CameraID is the camera the list was installed on (EffectInstalled only).
	CameraID uint32
	// Observers is the registry size after an install, or the number of
	// lists detached by a teardown.
	Observers int
}

func emitEffectEvent(s *Scene, ev EffectEvent) {
	if s == nil || s.store == nil {
		return
	}
	s.store.EmitEvent(ev)
}
