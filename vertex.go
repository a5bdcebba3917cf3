package triangle

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Packed vertex layout. Each vertex is 8 little-endian float32 values:
//
//	position (vec4<f32>) = 16 bytes (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
const (
	VertexStride   = 32
	PositionOffset = 0
	ColorOffset    = 16
)

// Vertex is one triangle corner: a homogeneous clip-space position and an
// RGBA color with components in [0, 1].
type Vertex struct {
	Position [4]float32
	Color    [4]float32
}

// V builds a Vertex from eight floats in (x, y, z, w, r, g, b, a) order.
func V(x, y, z, w, r, g, b, a float32) Vertex {
	return Vertex{
		Position: [4]float32{x, y, z, w},
		Color:    [4]float32{r, g, b, a},
	}
}

// TriangleVertices returns the demo triangle: red apex, green bottom-left,
// blue bottom-right.
func TriangleVertices() []Vertex {
	return []Vertex{
		V(0.0, 0.6, 0, 1, 1, 0, 0, 1),
		V(-0.5, -0.6, 0, 1, 0, 1, 0, 1),
		V(0.5, -0.6, 0, 1, 0, 0, 1, 1),
	}
}

// EncodeVertices packs vertices into the byte representation uploaded to the
// device. The result is exactly len(vertices)*VertexStride bytes long.
func EncodeVertices(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	for i := range vertices {
		writeVertex(buf[i*VertexStride:], &vertices[i])
	}
	return buf
}

func writeVertex(buf []byte, v *Vertex) {
	for j, f := range v.Position {
		binary.LittleEndian.PutUint32(buf[PositionOffset+j*4:], math.Float32bits(f))
	}
	for j, f := range v.Color {
		binary.LittleEndian.PutUint32(buf[ColorOffset+j*4:], math.Float32bits(f))
	}
}

// DecodeVertices is the inverse of EncodeVertices.
func DecodeVertices(data []byte) ([]Vertex, error) {
	if len(data)%VertexStride != 0 {
		return nil, fmt.Errorf("triangle: vertex data length %d is not a multiple of %d", len(data), VertexStride)
	}
	out := make([]Vertex, len(data)/VertexStride)
	for i := range out {
		b := data[i*VertexStride:]
		for j := 0; j < 4; j++ {
			out[i].Position[j] = math.Float32frombits(binary.LittleEndian.Uint32(b[PositionOffset+j*4:]))
			out[i].Color[j] = math.Float32frombits(binary.LittleEndian.Uint32(b[ColorOffset+j*4:]))
		}
	}
	return out, nil
}
