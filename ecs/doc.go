// Package ecs bridges sprig scenes and a [Donburi] world.
//
// [NewDonburiStore] forwards scene events (finished tweens, finished camera
// scrolls) into the world as typed events; subscribe to [SceneEventType] in
// your systems to receive them.
//
// [Spawn] creates an entity that mirrors a node's transform in a [Transform2D]
// component. Systems edit the component and [SyncTransforms] pushes the
// values into the nodes; [CaptureTransforms] goes the other way, e.g. after
// tweens have moved the nodes.
//
// Usage:
//
//	world := donburi.NewWorld()
//	scene.SetEntityStore(ecs.NewDonburiStore(world))
//	ship := ecs.Spawn(world, shipNode)
//
//	// each frame, before drawing:
//	ecs.SyncTransforms(world)
//	ecs.SceneEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
