package triangle

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// VertexLayout describes how one vertex buffer is read by the vertex stage.
type VertexLayout struct {
	Stride     uint64
	StepMode   gputypes.VertexStepMode
	Attributes []gputypes.VertexAttribute
}

// DefaultVertexLayout returns the layout of the packed Vertex:
// location 0 = float32x4 position at byte 0, location 1 = float32x4 color at
// byte 16, stride 32, stepped per vertex.
func DefaultVertexLayout() VertexLayout {
	return VertexLayout{
		Stride:   VertexStride,
		StepMode: gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x4, Offset: PositionOffset, ShaderLocation: 0}, // position
			{Format: gputypes.VertexFormatFloat32x4, Offset: ColorOffset, ShaderLocation: 1},    // color
		},
	}
}

// Validate checks the layout against the packed Vertex representation.
func (l VertexLayout) Validate() error {
	want := DefaultVertexLayout()
	if l.Stride != want.Stride {
		return fmt.Errorf("%w: stride %d, want %d", ErrLayoutMismatch, l.Stride, want.Stride)
	}
	if l.StepMode != want.StepMode {
		return fmt.Errorf("%w: layout must step per vertex", ErrLayoutMismatch)
	}
	if len(l.Attributes) != len(want.Attributes) {
		return fmt.Errorf("%w: %d attributes, want %d", ErrLayoutMismatch, len(l.Attributes), len(want.Attributes))
	}
	for i, a := range l.Attributes {
		w := want.Attributes[i]
		if a.Format != w.Format || a.Offset != w.Offset || a.ShaderLocation != w.ShaderLocation {
			return fmt.Errorf("%w: attribute %d is %v@%d (location %d), want %v@%d (location %d)",
				ErrLayoutMismatch, i, a.Format, a.Offset, a.ShaderLocation, w.Format, w.Offset, w.ShaderLocation)
		}
	}
	return nil
}

func (l VertexLayout) buffers() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{{
		ArrayStride: l.Stride,
		StepMode:    l.StepMode,
		Attributes:  append([]gputypes.VertexAttribute(nil), l.Attributes...),
	}}
}

// PipelineConfig is the comparable configuration a pipeline was built from.
// Two pipelines with equal configs render identically for identical draws.
type PipelineConfig struct {
	Shader         string
	VertexEntry    string
	FragmentEntry  string
	Stride         uint64
	AttributeCount int
	Topology       gputypes.PrimitiveTopology
	Format         gputypes.TextureFormat
}

// PipelineDescriptor is an immutable render pipeline: shader entry points,
// vertex layout, triangle-list topology and output format.
type PipelineDescriptor struct {
	config   PipelineConfig
	layout   VertexLayout
	pipeLay  hal.PipelineLayout
	pipeline hal.RenderPipeline
}

// PipelineOption configures BuildPipeline.
type PipelineOption func(*pipelineOptions)

type pipelineOptions struct {
	label         string
	vertexEntry   string
	fragmentEntry string
}

// WithPipelineEntryPoints overrides the vertex and fragment entry points.
func WithPipelineEntryPoints(vertex, fragment string) PipelineOption {
	return func(o *pipelineOptions) {
		o.vertexEntry = vertex
		o.fragmentEntry = fragment
	}
}

// WithPipelineLabel sets the pipeline debug label.
func WithPipelineLabel(label string) PipelineOption {
	return func(o *pipelineOptions) {
		o.label = label
	}
}

// BuildPipeline creates a render pipeline for shader and layout that writes
// to format.
//
// format must equal the surface format of dc. A layout that does not match
// Vertex fails with ErrLayoutMismatch, and an entry point the shader does
// not declare fails with *ShaderCompileError.
//
// The hal layer has no reflection-based auto layout, so the pipeline gets an
// explicit layout with no bind groups.
func BuildPipeline(dc *DeviceContext, shader *ShaderProgram, layout VertexLayout, format gputypes.TextureFormat, opts ...PipelineOption) (*PipelineDescriptor, error) {
	if err := dc.requireBound(); err != nil {
		return nil, err
	}
	if shader == nil {
		return nil, &ShaderCompileError{Diagnostics: "no shader program"}
	}

	o := pipelineOptions{
		label:         "triangle_pipeline",
		vertexEntry:   DefaultVertexEntry,
		fragmentEntry: DefaultFragmentEntry,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if format != dc.format {
		return nil, fmt.Errorf("%w: pipeline %v, surface %v", ErrFormatMismatch, format, dc.format)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if err := shader.resolve(StageVertex, o.vertexEntry); err != nil {
		return nil, err
	}
	if err := shader.resolve(StageFragment, o.fragmentEntry); err != nil {
		return nil, err
	}

	pipeLayout, err := dc.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            o.label + "_layout",
		BindGroupLayouts: nil,
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}

	pipeline, err := dc.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  o.label,
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader.module,
			EntryPoint: o.vertexEntry,
			Buffers:    layout.buffers(),
		},
		Fragment: &hal.FragmentState{
			Module:     shader.module,
			EntryPoint: o.fragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		dc.device.DestroyPipelineLayout(pipeLayout)
		return nil, &ShaderCompileError{Label: shader.label, Diagnostics: err.Error(), Err: err}
	}

	return &PipelineDescriptor{
		config: PipelineConfig{
			Shader:         shader.label,
			VertexEntry:    o.vertexEntry,
			FragmentEntry:  o.fragmentEntry,
			Stride:         layout.Stride,
			AttributeCount: len(layout.Attributes),
			Topology:       gputypes.PrimitiveTopologyTriangleList,
			Format:         format,
		},
		layout:   layout,
		pipeLay:  pipeLayout,
		pipeline: pipeline,
	}, nil
}

// Pipeline returns the HAL render pipeline.
func (p *PipelineDescriptor) Pipeline() hal.RenderPipeline { return p.pipeline }

// Config returns the configuration the pipeline was built from.
func (p *PipelineDescriptor) Config() PipelineConfig { return p.config }

// Layout returns the vertex layout.
func (p *PipelineDescriptor) Layout() VertexLayout { return p.layout }
