package triangle

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Surface is a drawable target owned by the host (a canvas, a window
// swapchain or an offscreen texture).
//
// Configure binds the surface to a device and output format. It is called
// once by Acquire. CurrentTexture returns a view onto the image the next
// render pass should draw into.
type Surface interface {
	// Configure binds the surface to device and sets its pixel format.
	Configure(device hal.Device, format gputypes.TextureFormat) error

	// CurrentTexture returns a view onto the current presentable image.
	CurrentTexture() (hal.TextureView, error)

	// Size returns the current surface dimensions in pixels.
	Size() (width, height uint32)

	// Format returns the configured format, or TextureFormatUndefined
	// before Configure.
	Format() gputypes.TextureFormat
}

// SurfaceSize is a surface dimension change.
type SurfaceSize struct {
	Width  uint32
	Height uint32
}

// ResizeNotifier is implemented by surfaces that report size changes.
// Dimensions may change at any time between frames; the channel carries the
// most recent size and drops stale ones.
type ResizeNotifier interface {
	Resized() <-chan SurfaceSize
}
