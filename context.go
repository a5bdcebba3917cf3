package triangle

import "fmt"

// RenderContext holds every value produced by the setup sequence. It replaces
// module-level device state: each stage receives what it needs explicitly.
type RenderContext struct {
	Device   *DeviceContext
	Geometry *GeometryBuffer
	Shader   *ShaderProgram
	Pipeline *PipelineDescriptor
	Frames   *FrameSubmitter
}

// Setup runs Acquire, Upload, Compile and BuildPipeline in order. The first
// failure halts the sequence; later stages are not attempted.
func Setup(platform Platform, surface Surface, opts ...Option) (*RenderContext, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	dc, err := Acquire(platform, surface)
	if err != nil {
		return nil, err
	}

	geometry, err := uploadLabeled(dc, o.label+"_vertices", o.vertices)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	shader, err := compileLabeled(dc, o.label+"_shader", o.source)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	pipeline, err := BuildPipeline(dc, shader, DefaultVertexLayout(), dc.Format(),
		WithPipelineLabel(o.label+"_pipeline"),
		WithPipelineEntryPoints(o.vertexEntry, o.fragmentEntry))
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	return &RenderContext{
		Device:   dc,
		Geometry: geometry,
		Shader:   shader,
		Pipeline: pipeline,
		Frames:   NewFrameSubmitter(dc, o.clear),
	}, nil
}

// RenderOnce draws every uploaded vertex in one submitted render pass.
func (rc *RenderContext) RenderOnce() error {
	return rc.Frames.RenderOnce(rc.Pipeline, rc.Geometry, rc.Geometry.Count())
}

// Run is Setup followed by a single RenderOnce.
func Run(platform Platform, surface Surface, opts ...Option) (*RenderContext, error) {
	rc, err := Setup(platform, surface, opts...)
	if err != nil {
		return nil, err
	}
	if err := rc.RenderOnce(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return rc, nil
}
