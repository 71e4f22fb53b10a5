// Package ecs provides ECS adapters for refraction.
package ecs

import (
	"github.com/phanxgames/refraction"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EffectEventType is the Donburi event type for refraction lifecycle events.
// Subscribe to this in your ECS systems to learn when blur lists are
// installed on cameras or torn down.
var EffectEventType = events.NewEventType[refraction.EffectEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Effect events are published to EffectEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) refraction.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event refraction.EffectEvent) {
	EffectEventType.Publish(s.world, event)
}
