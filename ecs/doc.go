// Package ecs bridges yule firework events into a [Donburi] world.
//
// [NewDonburiSink] publishes every launch and detonation as a typed event.
// Subscribe to [FireworkEventType] in your ECS systems to receive them;
// queued events are delivered when the scene ends each Step.
//
// Usage:
//
//	world := donburi.NewWorld()
//	scene.AddEventSink(ecs.NewDonburiSink(world))
//	tally := ecs.TrackTally(world)
//	// ... later
//	fmt.Println(ecs.GetTally(world, tally).Detonations)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
