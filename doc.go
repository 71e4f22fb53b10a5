// Package refraction renders blurry glass for [Ebitengine].
//
// A [Scene] holds a node tree and one or more [Camera] viewports. Each camera
// frame clears its viewport, draws opaque nodes, the skybox behind them, then
// transparent nodes. A camera can carry [CommandList] values attached at
// fixed [Stage] boundaries of that frame; lists record scratch-target
// allocation, blits and shader-parameter writes, and replay every frame.
//
// # Quick start
//
//	scene := refraction.NewScene()
//	cam := scene.NewCamera(refraction.Rect{Width: 640, Height: 480})
//
//	bg := refraction.NewSprite("bg", backgroundImg)
//	scene.Root().AddChild(bg)
//
//	glass := refraction.NewSprite("glass", glassImg)
//	glass.Layer = refraction.LayerTransparent
//	glass.Material, _ = refraction.NewMaterial(refraction.RefractionShader())
//	glass.AddComponent(refraction.NewBlurRefraction(refraction.DefaultConfig()))
//	scene.Root().AddChild(glass)
//
//	refraction.Run(scene, refraction.RunConfig{Title: "Glass", Width: 640, Height: 480})
//
// # Blur refraction
//
// [BlurRefraction] is a node component. The first time a camera is about to
// draw its node, the component builds a blur list with
// [BuildBlurCommandList] and attaches it at [StageAfterSkybox]. The list
// copies the backbuffer, downsamples it into two half-resolution tiers,
// blurs them with a separable kernel, and publishes them as
// [GrabBlurTexture1] and [GrabBlurTexture2] in the scene's [ShaderGlobals].
// The refraction material of a transparent node samples both tiers behind
// itself and mixes them by the blur power.
//
// Lists are built once per camera and reused. Disabling the component,
// deactivating or disposing its node, or destroying it tears every list down
// and returns the scratch targets to the scene's pool.
//
// # Configuration
//
// [LoadConfig] reads a [Config] from the environment:
//
//	REFRACTION_BLUR_POWER   blur-strength multiplier (default 1.0)
//	REFRACTION_MODE         interactive | static (default interactive)
//	REFRACTION_DEBUG        log per-camera frame stats
//	REFRACTION_CAPTURE_DIR  directory used by Scene.Capture (default captures)
//
// In interactive mode the blur power is written to the node's material; in
// static mode it is published as a scene global.
//
// # Logging
//
// The package logs through log/slog and is silent by default. Install a
// logger with [SetLogger].
//
// [Ebitengine]: https://ebitengine.org
package refraction
