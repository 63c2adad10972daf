package circles

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func near(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func TestStepNoCollisionMovesBodies(t *testing.T) {
	bodies := []Body{
		{Center: mgl32.Vec2{-0.15, 0}, Radius: 0.1, Heading: 0, Speed: 0.02},
		{Center: mgl32.Vec2{0.15, 0}, Radius: 0.1, Heading: math32.Pi, Speed: 0.02},
	}
	Step(bodies, 1.5, 1.0)

	if !near(bodies[0].Center.X(), -0.13, eps) {
		t.Errorf("expected left body at x=-0.13, got %v", bodies[0].Center.X())
	}
	if !near(bodies[1].Center.X(), 0.13, eps) {
		t.Errorf("expected right body at x=0.13, got %v", bodies[1].Center.X())
	}
	for i, b := range bodies {
		if b.Speed != 0.02 {
			t.Errorf("body %d: expected speed unchanged, got %v", i, b.Speed)
		}
	}
	if bodies[0].Heading != 0 || bodies[1].Heading != math32.Pi {
		t.Errorf("expected headings unchanged, got %v and %v", bodies[0].Heading, bodies[1].Heading)
	}
}

func TestStepWallClampAndReflect(t *testing.T) {
	bodies := []Body{{Center: mgl32.Vec2{1.45, 0}, Radius: 0.1, Heading: 0, Speed: 0.05}}
	Step(bodies, 1.5, 1.0)

	if !near(bodies[0].Center.X(), 1.4, eps) {
		t.Errorf("expected x clamped to 1.4, got %v", bodies[0].Center.X())
	}
	if bodies[0].Heading != math32.Pi {
		t.Errorf("expected heading pi, got %v", bodies[0].Heading)
	}
}

func TestStepReflectsOffEachWall(t *testing.T) {
	tests := []struct {
		name    string
		center  mgl32.Vec2
		heading float32
		want    float32
	}{
		{"left", mgl32.Vec2{-1.45, 0}, math32.Pi, 0},
		{"top", mgl32.Vec2{0, 0.95}, math32.Pi / 2, 2*math32.Pi - math32.Pi/2},
		{"bottom", mgl32.Vec2{0, -0.95}, -math32.Pi / 2, 2*math32.Pi + math32.Pi/2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodies := []Body{{Center: tt.center, Radius: 0.1, Heading: tt.heading, Speed: 0.05}}
			Step(bodies, 1.5, 1.0)
			if !near(bodies[0].Heading, tt.want, eps) {
				t.Errorf("expected heading %v, got %v", tt.want, bodies[0].Heading)
			}
			b := bodies[0]
			if b.Center.X()-b.Radius < -1.5-eps || b.Center.X()+b.Radius > 1.5+eps ||
				b.Center.Y()-b.Radius < -1.0-eps || b.Center.Y()+b.Radius > 1.0+eps {
				t.Errorf("expected body inside arena, got center %v", b.Center)
			}
		})
	}
}

func TestStepHeadOnSwapsHeadings(t *testing.T) {
	bodies := []Body{
		{Center: mgl32.Vec2{-0.09, 0}, Radius: 0.1, Heading: 0, Speed: 0.02},
		{Center: mgl32.Vec2{0.09, 0}, Radius: 0.1, Heading: math32.Pi, Speed: 0.02},
	}
	Step(bodies, 1.5, 1.0)

	// Compare direction vectors; -pi and pi are the same heading.
	if !near(math32.Cos(bodies[0].Heading), -1, 1e-4) {
		t.Errorf("expected left body to head -x, got heading %v", bodies[0].Heading)
	}
	if !near(math32.Cos(bodies[1].Heading), 1, 1e-4) {
		t.Errorf("expected right body to head +x, got heading %v", bodies[1].Heading)
	}
	for i, b := range bodies {
		if !near(b.Speed, 0.02, eps) {
			t.Errorf("body %d: expected speed 0.02, got %v", i, b.Speed)
		}
	}
	if d := bodies[0].Center.Sub(bodies[1].Center).Len(); d < 0.2 {
		t.Errorf("expected pair separated to at least 0.2, got %v", d)
	}
}

// Row 0 pushes body 0 into both neighbours in turn; rows 1 and 2 then find
// it still touching and resolve the reverse pairs. All bodies start at rest
// so only the positional corrections move them.
func TestStepResolvesReversePairs(t *testing.T) {
	bodies := []Body{
		{Center: mgl32.Vec2{0, 0}, Radius: 0.1},
		{Center: mgl32.Vec2{0.15, 0}, Radius: 0.1},
		{Center: mgl32.Vec2{-0.15, 0}, Radius: 0.1},
	}
	sim, err := NewSimulation(bodies, DefaultArena())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sim.Events = NewEventBus()
	var pairs [][2]int
	sim.Events.Subscribe(EventContact, func(e Event) { pairs = append(pairs, [2]int{e.A, e.B}) })
	sim.Step()

	want := [][2]int{{0, 1}, {0, 2}, {1, 0}, {2, 0}}
	if len(pairs) != len(want) {
		t.Fatalf("expected contacts %v, got %v", want, pairs)
	}
	for k := range want {
		if pairs[k] != want[k] {
			t.Fatalf("expected contacts %v, got %v", want, pairs)
		}
	}

	wantX := []float32{-0.0022266, 0.1958333, -0.2022917}
	for i, b := range sim.Bodies {
		if !near(b.Center.X(), wantX[i], eps) || b.Center.Y() != 0 {
			t.Errorf("body %d: expected center (%v, 0), got %v", i, wantX[i], b.Center)
		}
		if b.Speed != 0 {
			t.Errorf("body %d: expected speed 0, got %v", i, b.Speed)
		}
		if !near(b.Heading, math32.Pi/2, eps) {
			t.Errorf("body %d: expected heading pi/2, got %v", i, b.Heading)
		}
	}
}

// Body 0 sits up and to the left of body 1, which moves straight up into
// it. The line of centers is folded into the first quadrant (phi = pi/4),
// so body 0 leaves at pi/4 and body 1 at 3pi/4.
func TestStepDiagonalContactFoldsAngle(t *testing.T) {
	bodies := []Body{
		{Center: mgl32.Vec2{0, 0}, Radius: 0.1},
		{Center: mgl32.Vec2{0.1, -0.11}, Radius: 0.1, Heading: math32.Pi / 2, Speed: 0.01},
	}
	Step(bodies, 1.5, 1.0)

	tests := []struct {
		center  mgl32.Vec2
		speed   float32
		heading float32
	}{
		{mgl32.Vec2{-0.0207107, 0.0207107}, 0.0070711, math32.Pi / 4},
		{mgl32.Vec2{0.125, -0.125}, 0.0070711, 3 * math32.Pi / 4},
	}
	for i, tt := range tests {
		b := bodies[i]
		if !near(b.Center.X(), tt.center.X(), eps) || !near(b.Center.Y(), tt.center.Y(), eps) {
			t.Errorf("body %d: expected center %v, got %v", i, tt.center, b.Center)
		}
		if !near(b.Speed, tt.speed, eps) {
			t.Errorf("body %d: expected speed %v, got %v", i, tt.speed, b.Speed)
		}
		if !near(b.Heading, tt.heading, 1e-4) {
			t.Errorf("body %d: expected heading %v, got %v", i, tt.heading, b.Heading)
		}
	}
}

func TestStepCornerBounceAddsPi(t *testing.T) {
	h := math32.Pi / 4
	bodies := []Body{{Center: mgl32.Vec2{1.45, 0.95}, Radius: 0.1, Heading: h, Speed: 0.01}}
	Step(bodies, 1.5, 1.0)

	if !near(bodies[0].Heading, math32.Pi+h, eps) {
		t.Errorf("expected unwrapped heading %v, got %v", math32.Pi+h, bodies[0].Heading)
	}
	if !near(bodies[0].Center.X(), 1.4, eps) || !near(bodies[0].Center.Y(), 0.9, eps) {
		t.Errorf("expected center clamped to (1.4, 0.9), got %v", bodies[0].Center)
	}
}

func TestStepCoincidentCentersSkipped(t *testing.T) {
	bodies := []Body{
		{Center: mgl32.Vec2{0.2, 0.1}, Radius: 0.1, Heading: 0.7, Speed: 0},
		{Center: mgl32.Vec2{0.2, 0.1}, Radius: 0.12, Heading: -1.1, Speed: 0},
	}
	Step(bodies, 1.5, 1.0)

	if bodies[0].Heading != 0.7 || bodies[1].Heading != -1.1 {
		t.Errorf("expected headings unchanged, got %v and %v", bodies[0].Heading, bodies[1].Heading)
	}
	for i, b := range bodies {
		if b.Speed != 0 {
			t.Errorf("body %d: expected speed unchanged, got %v", i, b.Speed)
		}
		if !finite(b.Center.X()) || !finite(b.Center.Y()) {
			t.Errorf("body %d: expected finite center, got %v", i, b.Center)
		}
	}
}

func TestStepZeroResultantSpeedStaysFinite(t *testing.T) {
	bodies := []Body{
		{Center: mgl32.Vec2{-0.1, 0}, Radius: 0.1, Heading: 0, Speed: 0.01},
		{Center: mgl32.Vec2{0.095, 0}, Radius: 0.1, Heading: 0, Speed: 0},
	}
	Step(bodies, 1.5, 1.0)

	if bodies[0].Speed != 0 {
		t.Errorf("expected mover to stop, got speed %v", bodies[0].Speed)
	}
	if !finite(bodies[0].Heading) {
		t.Errorf("expected finite heading, got %v", bodies[0].Heading)
	}
	if !near(bodies[1].Speed, 0.01, eps) || !near(bodies[1].Heading, 0, eps) {
		t.Errorf("expected target to take speed 0.01 at heading 0, got %v at %v", bodies[1].Speed, bodies[1].Heading)
	}
}

func TestStepKeepsBodiesInArena(t *testing.T) {
	arena := DefaultArena()
	for seed := uint64(1); seed <= 8; seed++ {
		bodies := Spawn(seed, SpawnOptions{})
		for tick := 0; tick < 600; tick++ {
			Step(bodies, arena.HalfW, arena.HalfH)
			for i, b := range bodies {
				x, y := b.Center.X(), b.Center.Y()
				if x < -arena.HalfW || x > arena.HalfW || y < -arena.HalfH || y > arena.HalfH {
					t.Fatalf("seed %d tick %d body %d: center %v outside arena", seed, tick, i, b.Center)
				}
				if !finite(b.Speed) || !finite(b.Heading) {
					t.Fatalf("seed %d tick %d body %d: speed %v heading %v not finite", seed, tick, i, b.Speed, b.Heading)
				}
			}
		}
	}
}

func TestStepDeterministic(t *testing.T) {
	a := Spawn(42, SpawnOptions{})
	b := Spawn(42, SpawnOptions{})
	for tick := 0; tick < 200; tick++ {
		Step(a, ArenaHalfWidth, ArenaHalfHeight)
		Step(b, ArenaHalfWidth, ArenaHalfHeight)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("body %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestUpdateTransform(t *testing.T) {
	b := Body{Center: mgl32.Vec2{0.3, -0.2}, Radius: 0.1}
	b.UpdateTransform()

	checks := []struct {
		row, col int
		want     float32
	}{
		{0, 0, 0.1}, {1, 1, 0.1}, {2, 2, 1}, {3, 3, 1},
		{0, 3, 0.3}, {1, 3, -0.2}, {2, 3, 0},
		{0, 1, 0}, {1, 0, 0},
	}
	for _, c := range checks {
		if got := b.Transform.At(c.row, c.col); !near(got, c.want, eps) {
			t.Errorf("transform[%d][%d]: expected %v, got %v", c.row, c.col, c.want, got)
		}
	}
}

func TestSimulationEvents(t *testing.T) {
	bodies := []Body{
		{Center: mgl32.Vec2{-0.09, 0}, Radius: 0.1, Heading: 0, Speed: 0.02},
		{Center: mgl32.Vec2{0.09, 0}, Radius: 0.1, Heading: math32.Pi, Speed: 0.02},
		{Center: mgl32.Vec2{1.45, 0.5}, Radius: 0.1, Heading: 0, Speed: 0.05},
	}
	sim, err := NewSimulation(bodies, DefaultArena())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sim.Events = NewEventBus()

	var contacts, walls []Event
	sim.Events.Subscribe(EventContact, func(e Event) { contacts = append(contacts, e) })
	sim.Events.Subscribe(EventWallHit, func(e Event) { walls = append(walls, e) })
	sim.Step()

	if len(contacts) != 1 || contacts[0].A != 0 || contacts[0].B != 1 {
		t.Errorf("expected one contact (0,1), got %+v", contacts)
	}
	if len(walls) != 1 || walls[0].A != 2 || walls[0].Wall != WallRight {
		t.Errorf("expected one right wall hit by body 2, got %+v", walls)
	}
	if sim.Ticks != 1 {
		t.Errorf("expected 1 tick, got %d", sim.Ticks)
	}

	inst := sim.Instances(nil)
	if len(inst) != 3 {
		t.Fatalf("expected 3 instances, got %d", len(inst))
	}
	if inst[2].Transform != sim.Bodies[2].Transform {
		t.Errorf("expected instance transform to match body transform")
	}
}

func TestNewSimulationValidates(t *testing.T) {
	_, err := NewSimulation([]Body{{Radius: 0}}, DefaultArena())
	if !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("expected ErrInvalidRadius, got %v", err)
	}
	_, err = NewSimulation(nil, Arena{HalfW: 0, HalfH: 1})
	if !errors.Is(err, ErrInvalidArena) {
		t.Errorf("expected ErrInvalidArena, got %v", err)
	}
}

func TestNewSimulationLeavesBodiesOnError(t *testing.T) {
	bodies := []Body{
		{Center: mgl32.Vec2{0.3, 0.2}, Radius: 0.1},
		{Center: mgl32.Vec2{-0.3, 0}, Radius: -1},
	}
	if _, err := NewSimulation(bodies, DefaultArena()); !errors.Is(err, ErrInvalidRadius) {
		t.Fatalf("expected ErrInvalidRadius, got %v", err)
	}
	if bodies[0].Transform != (mgl32.Mat4{}) {
		t.Errorf("expected body 0 transform untouched, got %v", bodies[0].Transform)
	}
}

func TestNilEventBusEmit(t *testing.T) {
	var bus *EventBus
	bus.Emit(Event{Type: EventContact})
}
