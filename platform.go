package triangle

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Platform is the host capability provider: it discovers at most one adapter
// and reports the pixel format surfaces should be configured with.
type Platform interface {
	// RequestAdapter returns the adapter to use, or nil when the host has
	// none. An error is reserved for discovery failures.
	RequestAdapter() (Adapter, error)

	// PreferredFormat returns the platform's preferred output format.
	PreferredFormat() gputypes.TextureFormat
}

// Adapter is a physical device handle before a logical device exists.
type Adapter interface {
	// Info describes the adapter.
	Info() AdapterInfo

	// RequestDevice negotiates a logical device. It returns nil when the
	// adapter cannot provide one.
	RequestDevice() (*Device, error)
}

// AdapterInfo contains information about the selected GPU.
type AdapterInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
}

// String returns a human-readable description of the adapter.
func (a AdapterInfo) String() string {
	return fmt.Sprintf("%s (%v)", a.Name, a.DeviceType)
}

// Device is a negotiated logical device and its queue.
type Device struct {
	Device hal.Device
	Queue  hal.Queue

	// Limits are the limits the device was opened with. They are logged,
	// never branched on.
	Limits gputypes.Limits
}
