package circles

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrInvalidRadius = errors.New("radius must be positive")
	ErrInvalidArena  = errors.New("arena half-extents must be positive")
)

// Arena is the rectangle [-HalfW,HalfW]x[-HalfH,HalfH] bodies are confined to.
type Arena struct {
	HalfW, HalfH float32
}

// DefaultArena matches the 3:2 world of the circles window.
func DefaultArena() Arena {
	return Arena{HalfW: ArenaHalfWidth, HalfH: ArenaHalfHeight}
}

// Simulation owns the body collection and advances it one tick per frame.
// It is not safe for concurrent use; the host calls Step from its render loop.
type Simulation struct {
	Bodies []Body
	Arena  Arena
	Events *EventBus // optional
	Ticks  uint64
}

// NewSimulation takes ownership of bodies and derives their initial
// transforms so they can be drawn before the first Step.
func NewSimulation(bodies []Body, arena Arena) (*Simulation, error) {
	if arena.HalfW <= 0 || arena.HalfH <= 0 {
		return nil, fmt.Errorf("new simulation %vx%v: %w", arena.HalfW, arena.HalfH, ErrInvalidArena)
	}
	for i := range bodies {
		if !(bodies[i].Radius > 0) {
			return nil, fmt.Errorf("new simulation: body %d radius %v: %w", i, bodies[i].Radius, ErrInvalidRadius)
		}
	}
	for i := range bodies {
		bodies[i].UpdateTransform()
	}
	return &Simulation{Bodies: bodies, Arena: arena}, nil
}

// Step advances every body by one tick.
func (s *Simulation) Step() {
	step(s.Bodies, s.Arena.HalfW, s.Arena.HalfH, s.Events)
	s.Ticks++
}

// Instances exports (transform, color) per body in index order. out is
// reused when it has room.
func (s *Simulation) Instances(out []Instance) []Instance {
	out = out[:0]
	for i := range s.Bodies {
		out = append(out, Instance{Transform: s.Bodies[i].Transform, Color: s.Bodies[i].Color})
	}
	return out
}

// Step advances bodies in place by one tick inside the arena
// [-halfW,halfW]x[-halfH,halfH].
//
// Speed is a per-tick displacement, so the simulation runs at the host's
// frame rate. Order matters and is fixed: all bodies integrate first, then
// for each body j every ordered pair (j,i) is resolved followed by j's wall
// bounce. Unordered pairs are visited twice, once from each side.
func Step(bodies []Body, halfW, halfH float32) {
	step(bodies, halfW, halfH, nil)
}

func step(bodies []Body, halfW, halfH float32, bus *EventBus) {
	for j := range bodies {
		b := &bodies[j]
		b.Center[0] += b.Speed * math32.Cos(b.Heading)
		b.Center[1] += b.Speed * math32.Sin(b.Heading)
	}

	for j := range bodies {
		bj := &bodies[j]
		for i := range bodies {
			if i == j {
				continue
			}
			bi := &bodies[i]
			if !collide(bj, bi) {
				continue
			}
			if bus != nil {
				bus.Emit(Event{
					Type:  EventContact,
					A:     j,
					B:     i,
					X:     (bj.Center[0] + bi.Center[0]) * 0.5,
					Y:     (bj.Center[1] + bi.Center[1]) * 0.5,
					Speed: bj.Speed + bi.Speed,
				})
			}
		}
		if w := bounce(bj, halfW, halfH); w != 0 && bus != nil {
			bus.Emit(Event{
				Type:  EventWallHit,
				A:     j,
				B:     -1,
				Wall:  w,
				X:     bj.Center[0],
				Y:     bj.Center[1],
				Speed: bj.Speed,
			})
		}
	}

	// A later row's correction can push an already bounced body back over
	// a wall. Clamp without reflecting; the next tick's bounce handles it.
	for j := range bodies {
		contain(&bodies[j], halfW, halfH)
		bodies[j].UpdateTransform()
	}
}

// collide applies the elastic response to the ordered pair (j, i) when they
// touch and reports whether it did.
func collide(j, i *Body) bool {
	dx := j.Center[0] - i.Center[0]
	dy := j.Center[1] - i.Center[1]
	distance := math32.Sqrt(dx*dx + dy*dy)
	if distance == 0 {
		return false
	}
	reach := j.Radius + i.Radius
	if distance > reach {
		return false
	}

	// Line-of-centers angle folded into [0, pi/2]; the sign of the direction
	// is intentionally dropped.
	var phi float32
	if dx == 0 {
		phi = math32.Pi / 2
	} else {
		phi = math32.Atan(math32.Abs(dy) / math32.Abs(dx))
	}
	perp := phi + math32.Pi/2

	alongJ := j.Speed * math32.Cos(j.Heading-phi)
	alongI := i.Speed * math32.Cos(i.Heading-phi)
	acrossJ := j.Speed * math32.Sin(j.Heading-phi)
	acrossI := i.Speed * math32.Sin(i.Heading-phi)

	v1 := mgl32.Vec2{
		alongI*math32.Cos(phi) + acrossJ*math32.Cos(perp),
		alongI*math32.Sin(phi) + acrossJ*math32.Sin(perp),
	}
	v2 := mgl32.Vec2{
		alongJ*math32.Cos(phi) + acrossI*math32.Cos(perp),
		alongJ*math32.Sin(phi) + acrossI*math32.Sin(perp),
	}
	j.Speed, j.Heading = polar(v1)
	i.Speed, i.Heading = polar(v2)

	// i's push is taken from j's already moved center, so the pair ends
	// slightly more than reach apart.
	half := (reach - distance) / 2
	j.Center[0] += half * (j.Center[0] - i.Center[0]) / distance
	j.Center[1] += half * (j.Center[1] - i.Center[1]) / distance
	i.Center[0] -= half * (j.Center[0] - i.Center[0]) / distance
	i.Center[1] -= half * (j.Center[1] - i.Center[1]) / distance
	return true
}

// polar converts a velocity back to (speed, heading). The sign of vy picks
// the half plane since acos alone only covers [0, pi].
func polar(v mgl32.Vec2) (speed, heading float32) {
	speed = math32.Sqrt(v[0]*v[0] + v[1]*v[1])
	d := speed
	if d < SpeedEpsilon {
		d = SpeedEpsilon
	}
	c := clampF(v[0]/d, -1, 1)
	heading = math32.Acos(c)
	if v[1] < 0 {
		heading = -heading
	}
	return speed, heading
}

// bounce clamps b's edge onto any wall it reached and reflects its heading.
// Reflections are not wrapped back into (-pi, pi]: a corner hit adds pi, so
// between collisions the heading can drift by multiples of pi and slowly
// lose float32 precision. Only cos and sin of it are ever used.
func bounce(b *Body, halfW, halfH float32) Wall {
	var hit Wall
	if b.Center[0]+b.Radius >= halfW {
		b.Center[0] = halfW - b.Radius
		b.Heading = math32.Pi - b.Heading
		hit |= WallRight
	} else if b.Center[0]-b.Radius <= -halfW {
		b.Center[0] = -halfW + b.Radius
		b.Heading = math32.Pi - b.Heading
		hit |= WallLeft
	}

	if b.Center[1]+b.Radius >= halfH {
		b.Center[1] = halfH - b.Radius
		b.Heading = 2*math32.Pi - b.Heading
		hit |= WallTop
	} else if b.Center[1]-b.Radius <= -halfH {
		b.Center[1] = -halfH + b.Radius
		b.Heading = 2*math32.Pi - b.Heading
		hit |= WallBottom
	}
	return hit
}

func contain(b *Body, halfW, halfH float32) {
	b.Center[0] = clampEdge(b.Center[0], b.Radius, halfW)
	b.Center[1] = clampEdge(b.Center[1], b.Radius, halfH)
}

// clampEdge keeps [v-r, v+r] inside [-half, half]. A body wider than the
// arena is centered.
func clampEdge(v, r, half float32) float32 {
	lo, hi := -half+r, half-r
	if lo > hi {
		return 0
	}
	return clampF(v, lo, hi)
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
