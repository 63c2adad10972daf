// Package orbit animates the sun-and-planets scene. Every planet spins about
// its own z axis and revolves about the sun's, both at constant angular
// speed in radians per second of un-paused time.
package orbit

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Planet struct {
	Center          mgl32.Vec3 // position at t=0, relative to the sun
	Radius          float32
	RotationTheta   float32
	RevolutionTheta float32
	RotationSpeed   float32
	RevolutionSpeed float32

	Model mgl32.Mat4
}

// OrbitRadius is the distance from the sun, which revolution preserves.
func (p *Planet) OrbitRadius() float32 {
	return p.Center.Len()
}

// Position is the planet's current world-space center.
func (p *Planet) Position() mgl32.Vec3 {
	return p.Model.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// Update sets both angles from elapsed seconds and rebuilds the model matrix
// as revolve * translate * spin * scale.
func (p *Planet) Update(elapsed float32) {
	p.RotationTheta = p.RotationSpeed * elapsed
	p.RevolutionTheta = p.RevolutionSpeed * elapsed

	scale := mgl32.Scale3D(p.Radius, p.Radius, p.Radius)
	spin := mgl32.HomogRotate3DZ(p.RotationTheta)
	translate := mgl32.Translate3D(p.Center.X(), p.Center.Y(), p.Center.Z())
	revolve := mgl32.HomogRotate3DZ(p.RevolutionTheta)
	p.Model = revolve.Mul4(translate).Mul4(spin).Mul4(scale)
}

// onOrbit places a planet at x on a circle of radius orbit; south selects
// the negative y root.
func onOrbit(x, orbit float32, south bool) mgl32.Vec3 {
	y := math32.Sqrt(orbit*orbit - x*x)
	if south {
		y = -y
	}
	return mgl32.Vec3{x, y, 0}
}

type System struct {
	Planets []Planet
}

// SolarSystem returns the sun followed by seven planets with increasing
// orbits and decreasing revolution speeds.
func SolarSystem() *System {
	planets := []Planet{
		{Center: mgl32.Vec3{}, Radius: 8.0, RotationSpeed: 0.5},
		{Center: onOrbit(10, 14.4, false), Radius: 1.4, RotationSpeed: 1.0, RevolutionSpeed: 1.0},
		{Center: onOrbit(2, 20.8, true), Radius: 2.5, RotationSpeed: 0.8, RevolutionSpeed: 0.9},
		{Center: onOrbit(-5, 28.3, false), Radius: 1.7, RotationSpeed: 0.4, RevolutionSpeed: 0.8},
		{Center: onOrbit(-15, 35.0, true), Radius: 1.8, RotationSpeed: 0.5, RevolutionSpeed: 0.7},
		{Center: onOrbit(30, 41.8, false), Radius: 1.5, RotationSpeed: 0.3, RevolutionSpeed: 0.6},
		{Center: onOrbit(-35, 48.3, true), Radius: 1.2, RotationSpeed: 0.8, RevolutionSpeed: 0.5},
		{Center: onOrbit(17, 54.5, false), Radius: 0.7, RotationSpeed: 0.8, RevolutionSpeed: 0.4},
	}
	s := &System{Planets: planets}
	s.Advance(0)
	return s
}

// Advance poses every planet at elapsed seconds. It is absolute, not
// incremental: calling it twice with the same value is idempotent.
func (s *System) Advance(elapsed float32) {
	for i := range s.Planets {
		s.Planets[i].Update(elapsed)
	}
}
