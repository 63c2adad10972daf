package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Default sphere tessellation: 5 degree steps in both angles.
const (
	SphereSlices = 72
	SphereStacks = 36
)

// Sphere returns (slices+1)*(stacks+1) vertices of the unit sphere, column by
// column in longitude phi. Each column runs from the south pole (theta = pi)
// to the north pole. The seam column is duplicated so texcoords wrap cleanly.
func Sphere(slices, stacks int) ([]Vertex, error) {
	if slices < 1 || stacks < 1 {
		return nil, fmt.Errorf("sphere %dx%d: %w", slices, stacks, ErrTessellation)
	}
	v := make([]Vertex, 0, (slices+1)*(stacks+1))
	for i := 0; i <= slices; i++ {
		phi := 2 * math32.Pi * float32(i) / float32(slices)
		for j := 0; j <= stacks; j++ {
			theta := math32.Pi - math32.Pi*float32(j)/float32(stacks)
			p := mgl32.Vec3{
				math32.Sin(theta) * math32.Cos(phi),
				math32.Sin(theta) * math32.Sin(phi),
				math32.Cos(theta),
			}
			v = append(v, Vertex{
				Pos:  p,
				Norm: p,
				Tex:  mgl32.Vec2{phi / 2 / math32.Pi, 1 - theta/math32.Pi},
			})
		}
	}
	return v, nil
}

// SphereIndices emits two triangles per quad of the grid built by Sphere.
func SphereIndices(slices, stacks int) []uint32 {
	col := uint32(stacks + 1)
	idx := make([]uint32, 0, 6*slices*stacks)
	for i := 0; i < slices; i++ {
		for j := 0; j < stacks; j++ {
			a := col*uint32(i) + uint32(j)
			b := col*uint32(i+1) + uint32(j)
			idx = append(idx,
				a, b, b+1,
				a, b+1, a+1,
			)
		}
	}
	return idx
}
