package triangle

import (
	"errors"
	"fmt"
	"strings"
)

// Setup errors. All of them are fatal to the render sequence.
var (
	// ErrMissingSurface is returned when no drawable target is supplied.
	ErrMissingSurface = errors.New("triangle: canvas not found")

	// ErrUnsupportedPlatform is returned when the host offers no adapter or
	// the adapter refuses to produce a device.
	ErrUnsupportedPlatform = errors.New("triangle: WebGPU not supported")

	// ErrDeviceUnbound is returned when a stage receives a DeviceContext that
	// was not produced by Acquire.
	ErrDeviceUnbound = errors.New("triangle: device context is not bound")

	// ErrEmptyGeometry is returned when Upload is called without vertices.
	ErrEmptyGeometry = errors.New("triangle: no vertices to upload")

	// ErrFormatMismatch is returned when a pipeline targets a format other
	// than the one the surface was configured with.
	ErrFormatMismatch = errors.New("triangle: pipeline format does not match surface format")

	// ErrLayoutMismatch is returned when a vertex layout disagrees with the
	// packed Vertex representation.
	ErrLayoutMismatch = errors.New("triangle: vertex layout does not match vertex data")

	// ErrVertexCount is returned when a draw covers no vertices or more
	// vertices than the geometry holds.
	ErrVertexCount = errors.New("triangle: invalid vertex count")

	// ErrShaderCompile is the target for errors.Is on *ShaderCompileError.
	ErrShaderCompile = errors.New("triangle: shader compile error")
)

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage uint8

const (
	// StageVertex is the vertex stage.
	StageVertex ShaderStage = iota + 1
	// StageFragment is the fragment stage.
	StageFragment
)

// String returns the WGSL attribute name of the stage.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderStage(%d)", uint8(s))
	}
}

// ShaderCompileError reports malformed shader source or an entry point the
// pipeline needs but the source does not declare.
type ShaderCompileError struct {
	// Label is the shader module label.
	Label string

	// Stage and EntryPoint are set when an entry point could not be resolved.
	Stage      ShaderStage
	EntryPoint string

	// Diagnostics is the backend diagnostic text, if any.
	Diagnostics string

	// Err is the underlying error, if any.
	Err error
}

func (e *ShaderCompileError) Error() string {
	var b strings.Builder
	b.WriteString("triangle: shader ")
	if e.Label != "" {
		fmt.Fprintf(&b, "%q ", e.Label)
	}
	if e.EntryPoint != "" {
		fmt.Fprintf(&b, "has no %s entry point %q", e.Stage, e.EntryPoint)
	} else {
		b.WriteString("failed to compile")
	}
	if e.Diagnostics != "" {
		b.WriteString(": ")
		b.WriteString(e.Diagnostics)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ShaderCompileError) Unwrap() error { return e.Err }

// Is reports whether target is ErrShaderCompile.
func (e *ShaderCompileError) Is(target error) bool { return target == ErrShaderCompile }
