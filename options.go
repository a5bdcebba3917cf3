package triangle

import "github.com/gogpu/gputypes"

// Option configures Setup and Run.
//
// Example:
//
//	// Default triangle on a light-blue background
//	rc, err := triangle.Run(platform, surface)
//
//	// Custom geometry and background
//	rc, err := triangle.Run(platform, surface,
//	    triangle.WithVertices(vertices),
//	    triangle.WithClearColor(gputypes.Color{A: 1}))
type Option func(*options)

// options holds optional configuration for Setup.
type options struct {
	vertices      []Vertex
	source        string
	vertexEntry   string
	fragmentEntry string
	clear         gputypes.Color
	label         string
}

// defaultOptions returns the configuration of the demo triangle.
func defaultOptions() options {
	return options{
		vertices:      TriangleVertices(),
		source:        triangleShaderSource,
		vertexEntry:   DefaultVertexEntry,
		fragmentEntry: DefaultFragmentEntry,
		clear:         DefaultClearColor,
		label:         "triangle",
	}
}

// WithVertices replaces the demo triangle. Every vertex is drawn.
func WithVertices(vertices []Vertex) Option {
	return func(o *options) {
		o.vertices = vertices
	}
}

// WithShaderSource replaces the embedded WGSL program.
func WithShaderSource(source string) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithEntryPoints sets the vertex and fragment entry point names.
func WithEntryPoints(vertex, fragment string) Option {
	return func(o *options) {
		o.vertexEntry = vertex
		o.fragmentEntry = fragment
	}
}

// WithClearColor sets the render pass clear color.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clear = c
	}
}

// WithLabel sets the prefix of every GPU object label.
func WithLabel(label string) Option {
	return func(o *options) {
		if label != "" {
			o.label = label
		}
	}
}
