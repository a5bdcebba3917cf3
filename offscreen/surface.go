// Package offscreen provides a texture-backed triangle.Surface.
//
// The surface stands in for a canvas or swapchain: it is configured with a
// device and format, hands out a view onto its current image, reports size
// changes on a channel, and can read the rendered pixels back to the CPU.
package offscreen

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/triangle"
)

// Package errors.
var (
	// ErrNotConfigured is returned when the surface is used before Configure.
	ErrNotConfigured = errors.New("offscreen: surface not configured")

	// ErrInvalidSize is returned for zero dimensions.
	ErrInvalidSize = errors.New("offscreen: invalid dimensions")

	// ErrUnsupportedFormat is returned by ReadPixels for formats that are
	// not 8-bit RGBA or BGRA.
	ErrUnsupportedFormat = errors.New("offscreen: unsupported readback format")

	// ErrStale is returned by ReadPixels when the surface was resized or
	// reconfigured after its image was rendered.
	ErrStale = errors.New("offscreen: surface changed since last render")
)

// Surface is an offscreen render target. It is safe to call Resize from
// another goroutine while the render sequence runs.
type Surface struct {
	mu sync.Mutex

	device hal.Device
	format gputypes.TextureFormat

	width, height uint32
	stale         bool

	tex  hal.Texture
	view hal.TextureView
	// texW/texH are the dimensions tex was allocated with.
	texW, texH uint32

	resized chan triangle.SurfaceSize
}

var (
	_ triangle.Surface        = (*Surface)(nil)
	_ triangle.ResizeNotifier = (*Surface)(nil)
)

// New creates an unconfigured surface of the given size.
func New(width, height uint32) *Surface {
	return &Surface{
		width:   width,
		height:  height,
		resized: make(chan triangle.SurfaceSize, 1),
	}
}

// Configure binds the surface to device and format. Any existing texture is
// dropped and reallocated on the next CurrentTexture.
func (s *Surface) Configure(device hal.Device, format gputypes.TextureFormat) error {
	if device == nil {
		return fmt.Errorf("offscreen: configure with nil device")
	}
	if format == gputypes.TextureFormatUndefined {
		return fmt.Errorf("offscreen: configure with undefined format")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.destroyTextureLocked()
	s.device = device
	s.format = format
	s.stale = true
	return nil
}

// Format returns the configured format.
func (s *Surface) Format() gputypes.TextureFormat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.format
}

// Size returns the current dimensions.
func (s *Surface) Size() (width, height uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Resized returns the size-change channel. It holds at most the latest size.
func (s *Surface) Resized() <-chan triangle.SurfaceSize {
	return s.resized
}

// Resize changes the surface dimensions. The texture is reallocated lazily
// by the next CurrentTexture call.
func (s *Surface) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	s.mu.Lock()
	if s.width == width && s.height == height {
		s.mu.Unlock()
		return nil
	}
	s.width, s.height = width, height
	s.stale = true
	s.mu.Unlock()

	size := triangle.SurfaceSize{Width: width, Height: height}
	for {
		select {
		case s.resized <- size:
			return nil
		default:
		}
		// Drop the stale notification and retry.
		select {
		case <-s.resized:
		default:
		}
	}
}

// CurrentTexture returns a view onto the surface image, (re)allocating the
// texture when the surface was configured or resized since the last call.
func (s *Surface) CurrentTexture() (hal.TextureView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.device == nil {
		return nil, ErrNotConfigured
	}
	if s.width == 0 || s.height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, s.width, s.height)
	}
	if !s.stale && s.view != nil {
		return s.view, nil
	}

	s.destroyTextureLocked()

	tex, err := s.device.CreateTexture(&hal.TextureDescriptor{
		Label: "offscreen_color",
		Size: hal.Extent3D{
			Width:              s.width,
			Height:             s.height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        s.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("create surface texture: %w", err)
	}

	view, err := s.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "offscreen_color_view",
	})
	if err != nil {
		s.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create surface texture view: %w", err)
	}

	s.tex, s.view = tex, view
	s.texW, s.texH = s.width, s.height
	s.stale = false
	triangle.Logger().Debug("offscreen: texture allocated", "width", s.width, "height", s.height, "format", s.format)
	return view, nil
}

// destroyTextureLocked releases the current texture. Caller holds s.mu.
func (s *Surface) destroyTextureLocked() {
	if s.device == nil {
		return
	}
	if s.view != nil {
		s.device.DestroyTextureView(s.view)
		s.view = nil
	}
	if s.tex != nil {
		s.device.DestroyTexture(s.tex)
		s.tex = nil
	}
	s.texW, s.texH = 0, 0
}
