package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Circle returns a unit-circle fan: the origin followed by n+1 rim vertices,
// the last repeating the first so triangle k is (0, k+1, k+2).
func Circle(n int) ([]Vertex, error) {
	if n < 3 {
		return nil, fmt.Errorf("circle with %d segments: %w", n, ErrTessellation)
	}
	back := mgl32.Vec3{0, 0, -1}
	v := make([]Vertex, 0, n+2)
	v = append(v, Vertex{Pos: mgl32.Vec3{}, Norm: back, Tex: mgl32.Vec2{0.5, 0.5}})
	for k := 0; k <= n; k++ {
		t := math32.Pi * 2 * float32(k) / float32(n)
		c, s := math32.Cos(t), math32.Sin(t)
		v = append(v, Vertex{
			Pos:  mgl32.Vec3{c, s, 0},
			Norm: back,
			Tex:  mgl32.Vec2{c*0.5 + 0.5, s*0.5 + 0.5},
		})
	}
	return v, nil
}

// CircleIndices indexes the fan produced by Circle(n).
func CircleIndices(n int) []uint32 {
	idx := make([]uint32, 0, 3*n)
	for k := 0; k < n; k++ {
		idx = append(idx, 0, uint32(k+1), uint32(k+2))
	}
	return idx
}

// CircleTriangles expands the fan into a plain triangle list for drawing
// without an index buffer.
func CircleTriangles(fan []Vertex, n int) []Vertex {
	out := make([]Vertex, 0, 3*n)
	for k := 0; k < n; k++ {
		out = append(out, fan[0], fan[k+1], fan[k+2])
	}
	return out
}
