// Package sprig is a retained-mode 2D scene graph for [Ebitengine].
//
// Every visual element hangs off a [Node]. Each node owns a local transform,
// built either from its embedded [Transformable] (position, rotation, scale,
// origin) or from an explicit [Transform] matrix, and children are placed
// relative to their parent. Rendering walks the tree depth-first: each node
// combines the incoming transform with its own, draws its [Drawable] with the
// result, then draws its children in insertion order.
//
// # Quick start
//
//	scene := sprig.NewScene()
//
//	ship := sprig.NewNode("ship", sprig.NewRectangleShape(40, 20))
//	ship.SetOrigin(20, 10)
//	ship.SetPosition(320, 240)
//	_ = scene.Root().AddChild(ship)
//
//	turret := sprig.NewNode("turret", sprig.NewCircleShape(6))
//	turret.SetPosition(14, 4)
//	_ = ship.AddChild(turret)
//
//	scene.AddTween(sprig.TweenRotation(ship, 360, 2*time.Second, ease.Linear))
//	log.Fatal(sprig.Run(scene, sprig.RunConfig{Title: "demo", Width: 640, Height: 480}))
//
// # Conventions
//
// Y points down and angles are in degrees; positive rotation is clockwise on
// screen. [Transformable.Rotation] always reports a value in [0, 360).
// Rectangle collision queries ([Rect.Contains], [Rect.Intersects]) include
// the boundary.
//
// # Ownership
//
// A node has at most one parent. [Node.AddChild] refuses a node that already
// has one with an [*OwnershipError]; move nodes with [Node.Reparent].
// [Node.Dispose] detaches a node and disposes its whole subtree.
//
// # Render targets
//
// A [RenderTarget] receives one primitive and its final transform per call.
// [ImageTarget] rasterizes onto an *ebiten.Image; [CommandRecorder] records
// commands for tests and tooling. A [RenderTexture] is an offscreen canvas;
// [Node.ToTexture] bakes a subtree into one.
//
// # Events and scripting
//
// [Scene.SetEntityStore] receives a [SceneEvent] when a tween or camera scroll
// finishes; the ecs submodule forwards them to a donburi world. A
// [FrameScript] drives a scene one step per frame and can queue
// [Scene.Screenshot] captures, which [Run] writes as PNGs.
//
// [Ebitengine]: https://ebitengine.org
package sprig
