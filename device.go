package triangle

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceState is the binding state of a DeviceContext.
type DeviceState uint8

const (
	// DeviceUnbound is the state of a zero DeviceContext.
	DeviceUnbound DeviceState = iota
	// DeviceBound means a device is bound to a configured surface.
	DeviceBound
)

// String returns the state name.
func (s DeviceState) String() string {
	if s == DeviceBound {
		return "Bound"
	}
	return "Unbound"
}

// DeviceContext owns the logical device and the presentation surface bound
// to it. It is created once by Acquire and lives as long as the program.
type DeviceContext struct {
	device  hal.Device
	queue   hal.Queue
	surface Surface
	format  gputypes.TextureFormat
	info    AdapterInfo
	limits  gputypes.Limits
	state   DeviceState
}

// Acquire negotiates a device from platform and configures surface for it
// using the platform's preferred format.
//
// It fails with ErrMissingSurface before touching the platform when surface
// is nil, and with ErrUnsupportedPlatform when no adapter or device is
// available. There is no retry.
func Acquire(platform Platform, surface Surface) (*DeviceContext, error) {
	if surface == nil {
		return nil, ErrMissingSurface
	}
	if platform == nil {
		return nil, ErrUnsupportedPlatform
	}

	adapter, err := platform.RequestAdapter()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedPlatform, err)
	}
	if adapter == nil {
		return nil, fmt.Errorf("%w: no adapter available", ErrUnsupportedPlatform)
	}
	info := adapter.Info()
	Logger().Info("triangle: adapter selected", "adapter", info.String())

	dev, err := adapter.RequestDevice()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedPlatform, err)
	}
	if dev == nil || dev.Device == nil || dev.Queue == nil {
		return nil, fmt.Errorf("%w: adapter %q returned no device", ErrUnsupportedPlatform, info.Name)
	}
	Logger().Debug("triangle: device limits", "limits", dev.Limits)

	format := platform.PreferredFormat()
	if err := surface.Configure(dev.Device, format); err != nil {
		return nil, fmt.Errorf("configure surface: %w", err)
	}
	if got := surface.Format(); got != format {
		Logger().Warn("triangle: surface ignored requested format", "want", format, "got", got)
		format = got
	}

	return &DeviceContext{
		device:  dev.Device,
		queue:   dev.Queue,
		surface: surface,
		format:  format,
		info:    info,
		limits:  dev.Limits,
		state:   DeviceBound,
	}, nil
}

// State returns the binding state. A nil context is Unbound.
func (dc *DeviceContext) State() DeviceState {
	if dc == nil {
		return DeviceUnbound
	}
	return dc.state
}

// Device returns the HAL device.
func (dc *DeviceContext) Device() hal.Device { return dc.device }

// Queue returns the device queue.
func (dc *DeviceContext) Queue() hal.Queue { return dc.queue }

// Surface returns the configured surface.
func (dc *DeviceContext) Surface() Surface { return dc.surface }

// Format returns the configured surface format.
func (dc *DeviceContext) Format() gputypes.TextureFormat { return dc.format }

// Adapter returns information about the adapter the device came from.
func (dc *DeviceContext) Adapter() AdapterInfo { return dc.info }

// Limits returns the device limits.
func (dc *DeviceContext) Limits() gputypes.Limits { return dc.limits }

func (dc *DeviceContext) requireBound() error {
	if dc.State() != DeviceBound {
		return ErrDeviceUnbound
	}
	return nil
}
