package triangle

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice opens a device on the noop hal backend.
func createNoopDevice(t *testing.T) *Device {
	t.Helper()
	adapter, err := NewHALPlatform(&noop.API{}).RequestAdapter()
	if err != nil {
		t.Fatalf("RequestAdapter failed: %v", err)
	}
	if adapter == nil {
		t.Fatal("noop backend exposed no adapter")
	}
	dev, err := adapter.RequestDevice()
	if err != nil {
		t.Fatalf("RequestDevice failed: %v", err)
	}
	if dev == nil {
		t.Fatal("noop adapter returned no device")
	}
	return dev
}

// recordingDevice wraps a hal.Device and records the descriptors it sees.
type recordingDevice struct {
	hal.Device

	buffers   []hal.BufferDescriptor
	shaders   int
	pipelines []hal.RenderPipelineDescriptor
	encoders  []*recordingEncoder
	destroyed []hal.Buffer

	// beginErr and endErr are injected into every encoder created.
	beginErr error
	endErr   error
}

func (d *recordingDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	d.buffers = append(d.buffers, *desc)
	return d.Device.CreateBuffer(desc)
}

func (d *recordingDevice) DestroyBuffer(buf hal.Buffer) {
	d.destroyed = append(d.destroyed, buf)
	d.Device.DestroyBuffer(buf)
}

func (d *recordingDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	d.shaders++
	return d.Device.CreateShaderModule(desc)
}

func (d *recordingDevice) CreateRenderPipeline(desc *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	d.pipelines = append(d.pipelines, *desc)
	return d.Device.CreateRenderPipeline(desc)
}

func (d *recordingDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	e := &recordingEncoder{CommandEncoder: enc, beginErr: d.beginErr, endErr: d.endErr}
	d.encoders = append(d.encoders, e)
	return e, nil
}

// lastPass returns the most recent render pass, failing the test if none
// was recorded.
func (d *recordingDevice) lastPass(t *testing.T) (hal.RenderPassDescriptor, *recordingPass) {
	t.Helper()
	for i := len(d.encoders) - 1; i >= 0; i-- {
		e := d.encoders[i]
		if n := len(e.passes); n > 0 {
			return e.passes[n-1], e.pass
		}
	}
	t.Fatal("no render pass recorded")
	return hal.RenderPassDescriptor{}, nil
}

// recordingEncoder wraps a hal.CommandEncoder and records its render passes.
type recordingEncoder struct {
	hal.CommandEncoder

	beginErr  error
	endErr    error
	discarded int
	passes    []hal.RenderPassDescriptor
	pass      *recordingPass
}

func (e *recordingEncoder) BeginEncoding(label string) error {
	if e.beginErr != nil {
		return e.beginErr
	}
	return e.CommandEncoder.BeginEncoding(label)
}

func (e *recordingEncoder) EndEncoding() (hal.CommandBuffer, error) {
	if e.endErr != nil {
		return nil, e.endErr
	}
	return e.CommandEncoder.EndEncoding()
}

func (e *recordingEncoder) DiscardEncoding() {
	e.discarded++
	e.CommandEncoder.DiscardEncoding()
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	e.passes = append(e.passes, *desc)
	e.pass = &recordingPass{RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc)}
	return e.pass
}

type vertexBinding struct {
	slot   uint32
	buffer hal.Buffer
	offset uint64
}

// recordingPass records the commands issued inside a render pass.
type recordingPass struct {
	hal.RenderPassEncoder

	pipeline hal.RenderPipeline
	vertices []vertexBinding
	draws    [][4]uint32
	ended    bool
}

func (p *recordingPass) SetPipeline(pipeline hal.RenderPipeline) {
	p.pipeline = pipeline
	p.RenderPassEncoder.SetPipeline(pipeline)
}

func (p *recordingPass) SetVertexBuffer(slot uint32, buffer hal.Buffer, offset uint64) {
	p.vertices = append(p.vertices, vertexBinding{slot: slot, buffer: buffer, offset: offset})
	p.RenderPassEncoder.SetVertexBuffer(slot, buffer, offset)
}

func (p *recordingPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.draws = append(p.draws, [4]uint32{vertexCount, instanceCount, firstVertex, firstInstance})
	p.RenderPassEncoder.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *recordingPass) End() {
	p.ended = true
	p.RenderPassEncoder.End()
}

type bufferWrite struct {
	buffer hal.Buffer
	offset uint64
	data   []byte
}

// recordingQueue wraps a hal.Queue and records buffer writes and
// submissions. A non-nil writeErr fails every WriteBuffer.
type recordingQueue struct {
	hal.Queue

	writes   []bufferWrite
	writeErr error
	submits  int
}

func (q *recordingQueue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) error {
	if q.writeErr != nil {
		return q.writeErr
	}
	q.writes = append(q.writes, bufferWrite{buffer: buffer, offset: offset, data: append([]byte(nil), data...)})
	return q.Queue.WriteBuffer(buffer, offset, data)
}

func (q *recordingQueue) Submit(cmds []hal.CommandBuffer) (uint64, error) {
	q.submits++
	return q.Queue.Submit(cmds)
}

// stubPlatform hands out a fixed adapter.
type stubPlatform struct {
	adapter  Adapter
	format   gputypes.TextureFormat
	requests int
}

func (p *stubPlatform) RequestAdapter() (Adapter, error) {
	p.requests++
	return p.adapter, nil
}

func (p *stubPlatform) PreferredFormat() gputypes.TextureFormat { return p.format }

// stubAdapter hands out a fixed device (possibly nil).
type stubAdapter struct {
	device   *Device
	requests int
}

func (a *stubAdapter) Info() AdapterInfo { return AdapterInfo{Name: "stub"} }

func (a *stubAdapter) RequestDevice() (*Device, error) {
	a.requests++
	return a.device, nil
}

// newRecordingPlatform returns a platform backed by a noop device whose
// calls are recorded.
func newRecordingPlatform(t *testing.T, format gputypes.TextureFormat) (*stubPlatform, *recordingDevice) {
	t.Helper()
	platform, rec, _ := newRecordingPlatformWithQueue(t, format)
	return platform, rec
}

// newRecordingPlatformWithQueue is newRecordingPlatform that also records
// queue traffic.
func newRecordingPlatformWithQueue(t *testing.T, format gputypes.TextureFormat) (*stubPlatform, *recordingDevice, *recordingQueue) {
	t.Helper()
	dev := createNoopDevice(t)
	rec := &recordingDevice{Device: dev.Device}
	queue := &recordingQueue{Queue: dev.Queue}
	return &stubPlatform{
		adapter: &stubAdapter{device: &Device{Device: rec, Queue: queue, Limits: dev.Limits}},
		format:  format,
	}, rec, queue
}

// testSurface is a minimal texture-backed Surface.
type testSurface struct {
	device       hal.Device
	format       gputypes.TextureFormat
	width        uint32
	height       uint32
	configures   int
	acquisitions int
	configureErr error
	textureErr   error
	view         hal.TextureView
}

func newTestSurface() *testSurface {
	return &testSurface{width: 64, height: 48}
}

func (s *testSurface) Configure(device hal.Device, format gputypes.TextureFormat) error {
	s.configures++
	if s.configureErr != nil {
		return s.configureErr
	}
	s.device = device
	s.format = format
	return nil
}

func (s *testSurface) CurrentTexture() (hal.TextureView, error) {
	s.acquisitions++
	if s.textureErr != nil {
		return nil, s.textureErr
	}
	if s.view != nil {
		return s.view, nil
	}
	tex, err := s.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "test_surface",
		Size:          hal.Extent3D{Width: s.width, Height: s.height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        s.format,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, err
	}
	view, err := s.device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: "test_surface_view"})
	if err != nil {
		return nil, err
	}
	s.view = view
	return view, nil
}

func (s *testSurface) Size() (uint32, uint32) { return s.width, s.height }

func (s *testSurface) Format() gputypes.TextureFormat { return s.format }

// acquireNoop returns a bound context on the noop backend.
func acquireNoop(t *testing.T) (*DeviceContext, *recordingDevice, *testSurface) {
	t.Helper()
	platform, rec := newRecordingPlatform(t, gputypes.TextureFormatBGRA8Unorm)
	surface := newTestSurface()
	dc, err := Acquire(platform, surface)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	return dc, rec, surface
}

// acquireRecording is acquireNoop that also returns the recording queue.
func acquireRecording(t *testing.T) (*DeviceContext, *recordingDevice, *recordingQueue) {
	t.Helper()
	platform, rec, queue := newRecordingPlatformWithQueue(t, gputypes.TextureFormatBGRA8Unorm)
	dc, err := Acquire(platform, newTestSurface())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	return dc, rec, queue
}
