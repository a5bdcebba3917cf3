// Package triangle renders a single triangle through a WebGPU-style device.
//
// # Overview
//
// triangle is the smallest complete render bootstrap on top of gogpu/wgpu:
// it acquires a device from the host, uploads a vertex buffer, compiles a
// WGSL shader pair, builds a render pipeline and submits one frame.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/triangle"
//	    "github.com/gogpu/triangle/offscreen"
//	    _ "github.com/gogpu/wgpu/hal/vulkan"
//	)
//
//	platform, err := triangle.DefaultPlatform()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	surface := offscreen.New(640, 480)
//	rc, err := triangle.Run(platform, surface)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img, err := surface.ReadPixels(rc.Device, rc.Frames)
//
// # Setup Sequence
//
// Each stage depends on the previous one and there is no branching:
//
//	Surface → Acquire → Upload → Compile → BuildPipeline → RenderOnce
//
// The stages are also exported individually. [Setup] runs them in order and
// returns a [RenderContext] that owns every intermediate value; nothing is
// kept in package-level state apart from the logger.
//
// # Collaborators
//
// Window creation and adapter discovery belong to the host. The host supplies
// a [Surface] (a drawable target that can be configured and asked for its
// current image) and a [Platform] (zero-or-one adapter, zero-or-one device,
// preferred pixel format). [HALPlatform] enumerates adapters from a hal
// backend; [ProviderPlatform] adopts a device already owned by a
// gpucontext host such as gogpu.
//
// # Errors
//
// Every failure halts the sequence. [ErrMissingSurface] and
// [ErrUnsupportedPlatform] are returned before any GPU resource is created;
// shader problems surface as [*ShaderCompileError].
package triangle

// Version is the current version of the module.
const Version = "0.1.0"
