package triangle

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ProviderPlatform adopts a device owned by a gpucontext host, such as a
// gogpu application window. The host keeps ownership of the device; the
// platform reports exactly one adapter when the host exposes HAL handles.
//
// The provider's Device() must expose HalDevice() and HalQueue(), as
// *wgpu.Device does. Providers without HAL access report no adapter.
type ProviderPlatform struct {
	provider gpucontext.DeviceProvider
	name     string
}

// halDeviceSource is the part of *wgpu.Device the platform needs.
type halDeviceSource interface {
	HalDevice() hal.Device
	HalQueue() hal.Queue
}

// NewProviderPlatform wraps provider. name labels the adapter when the host
// does not report one.
func NewProviderPlatform(provider gpucontext.DeviceProvider, name string) *ProviderPlatform {
	if name == "" {
		name = "host"
	}
	return &ProviderPlatform{provider: provider, name: name}
}

// PreferredFormat returns the host surface format.
func (p *ProviderPlatform) PreferredFormat() gputypes.TextureFormat {
	if p.provider == nil {
		return gputypes.TextureFormatUndefined
	}
	return p.provider.SurfaceFormat()
}

// RequestAdapter returns the host adapter, or nil when the provider does not
// expose HAL types.
func (p *ProviderPlatform) RequestAdapter() (Adapter, error) {
	if p.provider == nil {
		return nil, nil
	}
	src, ok := p.provider.Device().(halDeviceSource)
	if !ok {
		return nil, nil
	}
	device := src.HalDevice()
	queue := src.HalQueue()
	if device == nil || queue == nil {
		return nil, nil
	}
	return &providerAdapter{
		info:   p.adapterInfo(),
		device: &Device{Device: device, Queue: queue, Limits: gputypes.DefaultLimits()},
	}, nil
}

// adapterInfo converts the host's adapter metadata.
func (p *ProviderPlatform) adapterInfo() AdapterInfo {
	host := p.provider.AdapterInfo()
	info := AdapterInfo{Name: host.Name, DeviceType: deviceTypeOf(host.Type)}
	if info.Name == "" {
		info.Name = p.name
	}
	return info
}

func deviceTypeOf(t gpucontext.AdapterType) gputypes.DeviceType {
	switch t {
	case gpucontext.AdapterTypeDiscrete:
		return gputypes.DeviceTypeDiscreteGPU
	case gpucontext.AdapterTypeIntegrated:
		return gputypes.DeviceTypeIntegratedGPU
	case gpucontext.AdapterTypeSoftware:
		return gputypes.DeviceTypeCPU
	default:
		return gputypes.DeviceTypeOther
	}
}

type providerAdapter struct {
	info   AdapterInfo
	device *Device
}

func (a *providerAdapter) Info() AdapterInfo { return a.info }

func (a *providerAdapter) RequestDevice() (*Device, error) { return a.device, nil }
