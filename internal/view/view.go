// Package view holds the projection side of the demos: aspect correction for
// the 2D scenes, a look-at camera for the 3D ones, and the pausable clock
// that drives time-based animation.
package view

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AspectMatrix squeezes the longer window axis so a unit square stays square.
func AspectMatrix(width, height int) mgl32.Mat4 {
	if width <= 0 || height <= 0 {
		return mgl32.Ident4()
	}
	aspect := float32(width) / float32(height)
	return mgl32.Scale3D(math32.Min(1/aspect, 1), math32.Min(aspect, 1), 1)
}

// SphereViewProjection looks at the unit sphere from +x with z up and no
// perspective.
func SphereViewProjection() mgl32.Mat4 {
	return mgl32.Mat4FromRows(
		mgl32.Vec4{0, 1, 0, 0},
		mgl32.Vec4{0, 0, 1, 0},
		mgl32.Vec4{-1, 0, 0, 1},
		mgl32.Vec4{0, 0, 0, 1},
	)
}

type Camera struct {
	Eye, At, Up mgl32.Vec3
	Fovy        float32 // radians
	Near, Far   float32
}

// DefaultPlanetCamera looks down the y axis onto the orbital plane.
func DefaultPlanetCamera() Camera {
	return Camera{
		Eye:  mgl32.Vec3{0, 70, 0},
		At:   mgl32.Vec3{0, 0, 0},
		Up:   mgl32.Vec3{0, 0, 1},
		Fovy: math32.Pi / 4,
		Near: 1,
		Far:  1000,
	}
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.At, c.Up)
}

func (c Camera) Projection(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(c.Fovy, aspect, c.Near, c.Far)
}

// Clock accumulates seconds only while running. Now values come from the
// host (glfw.GetTime) so the clock itself never reads wall time.
type Clock struct {
	elapsed float64
	last    float64
	started bool
	paused  bool
}

// NewClock returns a clock that starts running, or paused when paused is set.
func NewClock(paused bool) *Clock {
	return &Clock{paused: paused}
}

// Tick advances the checkpoint to now and returns the running total.
func (c *Clock) Tick(now float64) float64 {
	if c.started && !c.paused && now > c.last {
		c.elapsed += now - c.last
	}
	c.last = now
	c.started = true
	return c.elapsed
}

func (c *Clock) Toggle() { c.paused = !c.paused }

func (c *Clock) Paused() bool { return c.paused }

func (c *Clock) Elapsed() float64 { return c.elapsed }
