package triangle

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// InstanceFactory creates hal instances. Every registered hal backend
// (vulkan, metal, dx12, noop) satisfies it.
type InstanceFactory interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// HALPlatform discovers adapters through a gogpu/wgpu hal backend.
type HALPlatform struct {
	factory  InstanceFactory
	instance hal.Instance
	format   gputypes.TextureFormat
	limits   gputypes.Limits
}

// HALOption configures a HALPlatform.
type HALOption func(*HALPlatform)

// WithPreferredFormat overrides the surface format reported by the platform.
// The default is BGRA8Unorm, which every desktop swapchain supports.
func WithPreferredFormat(format gputypes.TextureFormat) HALOption {
	return func(p *HALPlatform) {
		p.format = format
	}
}

// WithLimits sets the limits requested when opening the device.
func WithLimits(limits gputypes.Limits) HALOption {
	return func(p *HALPlatform) {
		p.limits = limits
	}
}

// NewHALPlatform creates a platform backed by factory.
func NewHALPlatform(factory InstanceFactory, opts ...HALOption) *HALPlatform {
	p := &HALPlatform{
		factory: factory,
		format:  gputypes.TextureFormatBGRA8Unorm,
		limits:  gputypes.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultPlatform returns a platform on the Vulkan hal backend. The backend
// registers itself when github.com/gogpu/wgpu/hal/vulkan is imported.
func DefaultPlatform(opts ...HALOption) (*HALPlatform, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not registered", ErrUnsupportedPlatform)
	}
	return NewHALPlatform(backend, opts...), nil
}

// PreferredFormat returns the format surfaces are configured with.
func (p *HALPlatform) PreferredFormat() gputypes.TextureFormat {
	return p.format
}

// RequestAdapter enumerates adapters and returns the first discrete or
// integrated GPU, falling back to the first adapter of any kind. It returns
// nil when the backend exposes no adapter.
func (p *HALPlatform) RequestAdapter() (Adapter, error) {
	if p.factory == nil {
		return nil, nil
	}
	if p.instance == nil {
		instance, err := p.factory.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
		if err != nil {
			return nil, fmt.Errorf("%w: create instance: %w", ErrUnsupportedPlatform, err)
		}
		p.instance = instance
	}

	adapters := p.instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return nil, nil
	}

	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	return &halAdapter{
		adapter: selected.Adapter,
		info: AdapterInfo{
			Name:       selected.Info.Name,
			DeviceType: selected.Info.DeviceType,
		},
		limits: p.limits,
	}, nil
}

type halAdapter struct {
	adapter hal.Adapter
	info    AdapterInfo
	limits  gputypes.Limits
}

func (a *halAdapter) Info() AdapterInfo { return a.info }

func (a *halAdapter) RequestDevice() (*Device, error) {
	openDev, err := a.adapter.Open(gputypes.Features(0), a.limits)
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}
	if openDev.Device == nil || openDev.Queue == nil {
		return nil, nil
	}
	return &Device{
		Device: openDev.Device,
		Queue:  openDev.Queue,
		Limits: a.limits,
	}, nil
}
