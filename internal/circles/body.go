package circles

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Body is one simulated circle. Heading is the direction of travel, not a
// rotation of the shape; circles have no visible orientation.
type Body struct {
	Center  mgl32.Vec2
	Radius  float32
	Heading float32 // radians
	Speed   float32 // displacement per tick along Heading
	Color   mgl32.Vec4

	// Transform is derived from Center and Radius on every Step.
	Transform mgl32.Mat4
}

// Instance is what a renderer needs to draw one body.
type Instance struct {
	Transform mgl32.Mat4
	Color     mgl32.Vec4
}

// Velocity returns the per-tick displacement vector.
func (b *Body) Velocity() mgl32.Vec2 {
	return mgl32.Vec2{b.Speed * math32.Cos(b.Heading), b.Speed * math32.Sin(b.Heading)}
}

// UpdateTransform recomputes translate * rotate * scale. The rotation slot is
// the identity for circles and kept so every shape kind composes the same way.
func (b *Body) UpdateTransform() {
	scale := mgl32.Scale3D(b.Radius, b.Radius, 1)
	rotation := mgl32.Ident4()
	translate := mgl32.Translate3D(b.Center.X(), b.Center.Y(), 0)
	b.Transform = translate.Mul4(rotation).Mul4(scale)
}
