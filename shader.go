package triangle

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/triangle.wgsl
var triangleShaderSource string

// Default entry points of the embedded shader.
const (
	DefaultVertexEntry   = "vertex_main"
	DefaultFragmentEntry = "fragment_main"
)

// DefaultShaderSource returns the WGSL program used when no source is given.
// The vertex stage passes position and color through; the fragment stage
// returns the interpolated color.
func DefaultShaderSource() string { return triangleShaderSource }

// ShaderProgram is a compiled WGSL module with its declared entry points.
type ShaderProgram struct {
	label       string
	source      string
	entryPoints []ir.EntryPoint
	module      hal.ShaderModule
}

// Compile validates source with naga and creates a shader module on the
// device.
//
// Syntax errors are reported here as *ShaderCompileError. Entry points are
// not checked until BuildPipeline asks for them, so a program that compiles
// may still fail the pipeline build.
func Compile(dc *DeviceContext, source string) (*ShaderProgram, error) {
	return compileLabeled(dc, "triangle_shader", source)
}

func compileLabeled(dc *DeviceContext, label, source string) (*ShaderProgram, error) {
	if err := dc.requireBound(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(source) == "" {
		return nil, &ShaderCompileError{Label: label, Diagnostics: "shader source is empty"}
	}

	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, &ShaderCompileError{Label: label, Diagnostics: err.Error(), Err: err}
	}
	Logger().Debug("triangle: shader validated", "label", label, "spirv_bytes", len(spirv))

	entryPoints, err := reflectEntryPoints(source)
	if err != nil {
		return nil, &ShaderCompileError{Label: label, Diagnostics: err.Error(), Err: err}
	}

	module, err := dc.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return nil, &ShaderCompileError{Label: label, Diagnostics: err.Error(), Err: err}
	}

	return &ShaderProgram{
		label:       label,
		source:      source,
		entryPoints: entryPoints,
		module:      module,
	}, nil
}

// Module returns the HAL shader module.
func (s *ShaderProgram) Module() hal.ShaderModule { return s.module }

// Label returns the module label.
func (s *ShaderProgram) Label() string { return s.label }

// Source returns the WGSL source.
func (s *ShaderProgram) Source() string { return s.source }

// HasEntryPoint reports whether the source declares name for stage.
func (s *ShaderProgram) HasEntryPoint(stage ShaderStage, name string) bool {
	want, ok := stage.irStage()
	if !ok {
		return false
	}
	for _, ep := range s.entryPoints {
		if ep.Stage == want && ep.Name == name {
			return true
		}
	}
	return false
}

// resolve returns a *ShaderCompileError when the entry point is missing.
func (s *ShaderProgram) resolve(stage ShaderStage, name string) error {
	if s.HasEntryPoint(stage, name) {
		return nil
	}
	return &ShaderCompileError{
		Label:       s.label,
		Stage:       stage,
		EntryPoint:  name,
		Diagnostics: fmt.Sprintf("declared entry points: %s", s.describeEntryPoints()),
	}
}

func (s *ShaderProgram) describeEntryPoints() string {
	if len(s.entryPoints) == 0 {
		return "none"
	}
	parts := make([]string, len(s.entryPoints))
	for i, ep := range s.entryPoints {
		parts[i] = "@" + irStageName(ep.Stage) + " " + ep.Name
	}
	return strings.Join(parts, ", ")
}

// reflectEntryPoints lowers source to naga IR and returns its entry points.
func reflectEntryPoints(source string) ([]ir.EntryPoint, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, err
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, err
	}
	return module.EntryPoints, nil
}

func (s ShaderStage) irStage() (ir.ShaderStage, bool) {
	switch s {
	case StageVertex:
		return ir.StageVertex, true
	case StageFragment:
		return ir.StageFragment, true
	default:
		return 0, false
	}
}

func irStageName(stage ir.ShaderStage) string {
	switch stage {
	case ir.StageVertex:
		return "vertex"
	case ir.StageFragment:
		return "fragment"
	case ir.StageCompute:
		return "compute"
	case ir.StageTask:
		return "task"
	case ir.StageMesh:
		return "mesh"
	default:
		return fmt.Sprintf("stage(%d)", uint8(stage))
	}
}
