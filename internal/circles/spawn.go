package circles

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type SpawnOptions struct {
	Count int // DefaultBodyCount when <= 0

	// Strict resamples a body that overlaps an earlier one, up to
	// StrictRetries times, after which the last draw is kept. Without it
	// placements may overlap.
	Strict bool
}

// Spawn creates randomized bodies: centers in [-1,1]^2, radius in
// [MinRadius, MinRadius+RadiusRange), heading in (-pi, pi), speed in
// [0, MaxSpeed) and an opaque random color. The same seed and options
// always give the same bodies.
func Spawn(seed uint64, opts SpawnOptions) []Body {
	n := opts.Count
	if n <= 0 {
		n = DefaultBodyCount
	}
	rng := NewRand(seed)
	bodies := make([]Body, 0, n)
	for len(bodies) < n {
		b := drawBody(rng)
		if opts.Strict {
			for try := 0; try < StrictRetries && overlapsAny(b, bodies); try++ {
				b = drawBody(rng)
			}
		}
		b.UpdateTransform()
		bodies = append(bodies, b)
	}
	return bodies
}

// drawBody consumes the generator in a fixed order: center, radius, heading,
// color, speed, then the three sign flips.
func drawBody(rng *Rand) Body {
	cx := rng.Float32()
	cy := rng.Float32()
	radius := MinRadius + rng.Float32()*RadiusRange
	heading := rng.Float32() * math32.Pi
	color := mgl32.Vec4{rng.Float32(), rng.Float32(), rng.Float32(), 1}
	speed := rng.Float32() * MaxSpeed

	if rng.Coin() {
		cx = -cx
	}
	if rng.Coin() {
		cy = -cy
	}
	if rng.Coin() {
		heading = -heading
	}
	return Body{
		Center:  mgl32.Vec2{cx, cy},
		Radius:  radius,
		Heading: heading,
		Speed:   speed,
		Color:   color,
	}
}

func overlapsAny(b Body, placed []Body) bool {
	for i := range placed {
		if b.Center.Sub(placed[i].Center).Len() < b.Radius+placed[i].Radius {
			return true
		}
	}
	return false
}
