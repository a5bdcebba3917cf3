package triangle

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DefaultClearColor is the opaque light blue the render pass clears to.
var DefaultClearColor = gputypes.Color{R: 0, G: 0.5, B: 1, A: 1}

// DefaultWaitTimeout bounds FrameSubmitter.Wait when no timeout is given.
const DefaultWaitTimeout = 5 * time.Second

// pollInterval is how often WaitForSubmission checks the queue.
const pollInterval = time.Millisecond

// FrameSubmitter records and submits one render pass per RenderOnce call.
//
// Submission does not wait for the GPU. Commands within one submission
// execute in order (clear, then draw); Wait blocks until the most recent
// submission has completed.
type FrameSubmitter struct {
	dc    *DeviceContext
	clear gputypes.Color

	submitted uint64 // frames submitted
	index     uint64 // queue submission index of the last frame
	pending   hal.CommandBuffer
}

// NewFrameSubmitter creates a submitter for dc that clears to clear.
func NewFrameSubmitter(dc *DeviceContext, clear gputypes.Color) *FrameSubmitter {
	return &FrameSubmitter{dc: dc, clear: clear}
}

// ClearColor returns the render pass clear color.
func (f *FrameSubmitter) ClearColor() gputypes.Color { return f.clear }

// Submitted returns the number of frames submitted so far.
func (f *FrameSubmitter) Submitted() uint64 { return f.submitted }

// SubmissionIndex returns the queue submission index of the last frame, or
// zero before the first one.
func (f *FrameSubmitter) SubmissionIndex() uint64 { return f.index }

// RenderOnce acquires the surface's current image, clears it, draws
// vertexCount vertices of geometry with pipeline starting at vertex 0, and
// submits the commands to the device queue.
func (f *FrameSubmitter) RenderOnce(pipeline *PipelineDescriptor, geometry *GeometryBuffer, vertexCount uint32) error {
	dc := f.dc
	if err := dc.requireBound(); err != nil {
		return err
	}
	if pipeline == nil || geometry == nil {
		return fmt.Errorf("triangle: render needs a pipeline and geometry")
	}
	if vertexCount == 0 || vertexCount > geometry.Count() {
		return fmt.Errorf("%w: %d (geometry holds %d)", ErrVertexCount, vertexCount, geometry.Count())
	}

	// Step 1: current presentable image.
	view, err := dc.surface.CurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}

	encoder, err := dc.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "triangle_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("triangle_frame"); err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("begin encoding: %w", err)
	}

	// Step 2: clear before drawing.
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "triangle_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: f.clear,
		}},
	})

	// Steps 3-4: bind and draw, no instancing.
	rp.SetPipeline(pipeline.pipeline)
	rp.SetVertexBuffer(0, geometry.buffer, 0)
	rp.Draw(vertexCount, 1, 0, 0)

	// Step 5: end and submit.
	rp.End()
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("end encoding: %w", err)
	}

	if err := f.release(); err != nil {
		dc.device.FreeCommandBuffer(cmdBuf)
		return err
	}

	index, err := dc.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		dc.device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("submit: %w", err)
	}
	f.submitted++
	f.index = index
	f.pending = cmdBuf

	Logger().Info("triangle: frame submitted", "frame", f.submitted, "submission", index, "vertices", vertexCount)
	return nil
}

// Wait blocks until the last submitted frame has executed. A zero timeout
// uses DefaultWaitTimeout.
func (f *FrameSubmitter) Wait(timeout time.Duration) error {
	if f.submitted == 0 {
		return nil
	}
	if err := f.dc.WaitForSubmission(f.index, timeout); err != nil {
		return err
	}
	if f.pending != nil {
		f.dc.device.FreeCommandBuffer(f.pending)
		f.pending = nil
	}
	return nil
}

// release frees the previous command buffer once the GPU is done with it.
func (f *FrameSubmitter) release() error {
	if f.pending == nil {
		return nil
	}
	return f.Wait(DefaultWaitTimeout)
}

// WaitForSubmission blocks until the queue reports submission index as
// completed. A zero timeout uses DefaultWaitTimeout.
func (dc *DeviceContext) WaitForSubmission(index uint64, timeout time.Duration) error {
	if err := dc.requireBound(); err != nil {
		return err
	}
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	deadline := time.Now().Add(timeout)
	for dc.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return fmt.Errorf("wait for GPU: submission %d not complete after %v", index, timeout)
		}
		time.Sleep(pollInterval)
	}
	return nil
}
