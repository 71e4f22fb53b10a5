// Package ecs provides ECS adapters for refraction's effect lifecycle.
//
// The primary adapter is [NewDonburiStore], which forwards blur-refraction
// lifecycle events (a list installed on a camera, every list torn down)
// into a [Donburi] world as typed events. Subscribe to [EffectEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
