// Package mesh builds the unit shapes the demos draw: a triangle-fan circle
// and a latitude/longitude sphere. Vertex layout matches the shader inputs
// (position, normal, texcoord).
package mesh

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrTessellation = errors.New("tessellation too coarse")

// Vertex is 8 float32s: position, normal, texcoord.
type Vertex struct {
	Pos  mgl32.Vec3
	Norm mgl32.Vec3
	Tex  mgl32.Vec2
}

// VertexStride is the byte size of one Vertex in an interleaved buffer.
const VertexStride = 8 * 4

// Flatten interleaves vertices for upload into an array buffer.
func Flatten(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*8)
	for _, v := range vertices {
		out = append(out, v.Pos[:]...)
		out = append(out, v.Norm[:]...)
		out = append(out, v.Tex[:]...)
	}
	return out
}
