package triangle

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// GeometryBuffer is an ordered vertex sequence and its device-resident copy.
// It is never mutated after Upload.
type GeometryBuffer struct {
	label    string
	vertices []Vertex
	data     []byte
	buffer   hal.Buffer
}

// Upload allocates a vertex buffer sized exactly to the encoded vertices and
// queues a single write of the whole sequence.
//
// Any vertex count is accepted. Counts that are not a multiple of three
// leave an incomplete final primitive when drawn as a triangle list.
func Upload(dc *DeviceContext, vertices []Vertex) (*GeometryBuffer, error) {
	return uploadLabeled(dc, "triangle_vertices", vertices)
}

func uploadLabeled(dc *DeviceContext, label string, vertices []Vertex) (*GeometryBuffer, error) {
	if err := dc.requireBound(); err != nil {
		return nil, err
	}
	if len(vertices) == 0 {
		return nil, ErrEmptyGeometry
	}
	if len(vertices)%3 != 0 {
		Logger().Debug("triangle: vertex count is not a multiple of 3", "count", len(vertices))
	}

	data := EncodeVertices(vertices)
	buf, err := dc.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := dc.queue.WriteBuffer(buf, 0, data); err != nil {
		dc.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write %s: %w", label, err)
	}
	Logger().Debug("triangle: vertex buffer uploaded", "label", label, "bytes", len(data), "vertices", len(vertices))

	return &GeometryBuffer{
		label:    label,
		vertices: append([]Vertex(nil), vertices...),
		data:     data,
		buffer:   buf,
	}, nil
}

// Buffer returns the device buffer.
func (g *GeometryBuffer) Buffer() hal.Buffer { return g.buffer }

// Count returns the number of vertices.
func (g *GeometryBuffer) Count() uint32 {
	return uint32(len(g.vertices)) //nolint:gosec // vertex count fits uint32
}

// Size returns the buffer size in bytes.
func (g *GeometryBuffer) Size() uint64 { return uint64(len(g.data)) }

// Bytes returns a copy of the bytes written to the device buffer.
func (g *GeometryBuffer) Bytes() []byte {
	return append([]byte(nil), g.data...)
}

// Vertices returns a copy of the uploaded vertices.
func (g *GeometryBuffer) Vertices() []Vertex {
	return append([]Vertex(nil), g.vertices...)
}

// Label returns the buffer label.
func (g *GeometryBuffer) Label() string { return g.label }
