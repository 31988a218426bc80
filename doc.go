// Package yule renders a rotating 3D particle tree with twinkling lights
// and a continuous stream of exploding fireworks.
//
// The package is a per-frame simulation and render pipeline. A [Scene] owns
// the [State]: surface size, pointer, rotation angle, the static tree field
// and the live rockets and sparks. Each tick, [Scene.Step] may launch a
// rocket, integrates rockets and sparks and eases the rotation; [Scene.Draw]
// issues drawing commands against a [Surface].
//
// # Quick start
//
// [Run] opens an [Ebitengine] window and drives the scene for you:
//
//	scene := yule.NewScene(yule.DefaultConfig(), nil)
//	if err := yule.Run(scene, yule.RunConfig{Title: "yule"}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, feed the scene yourself:
//
//	scene.Resize(1000, 800, 1)
//	scene.SetPointer(x, y) // or scene.ClearPointer()
//	scene.Step(1.0 / 60)
//	scene.Draw(surface)
//
// # Surfaces
//
// A [Surface] is an immediate-mode 2D target: clear, blend mode, stroked
// lines, filled circles and a glow state. [EbitenSurface] tessellates onto
// an *ebiten.Image, the term package draws into terminal cells, and
// [Recorder] captures the commands for tests.
//
// # Configuration
//
// Every tunable lives in [Config]. [LoadConfig] decodes YAML on top of
// [DefaultConfig], so a file only needs the keys it changes:
//
//	fireworks:
//	  launch_chance: 0.03
//	  spark_cap: 4000
//	camera:
//	  auto_rotate: 0.01
//
// # Events
//
// Sinks registered with [Scene.AddEventSink] receive a [FireworkEvent] on
// every launch and detonation. The audio package plays bursts from them and
// the ecs package republishes them into a donburi world.
//
// [Ebitengine]: https://ebitengine.org
package yule
