// Package term draws the circles simulation into a terminal with tcell. It
// is the headless alternative to the GL window: each cell is a pixel and a
// body is a filled disk of background-colored cells.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"cgdemos/internal/circles"
)

// CellAspect is the height of a terminal cell over its width.
const CellAspect = 2.0

// View maps the arena onto the largest centered region of the screen that
// keeps it undistorted. The bottom row is reserved for status.
type View struct {
	screen tcell.Screen
	arena  circles.Arena

	scale            float32 // columns per world unit
	originX, originY int     // top-left cell of the arena
	cols, rows       int
}

func NewView(screen tcell.Screen, arena circles.Arena) *View {
	v := &View{screen: screen, arena: arena}
	v.Resize()
	return v
}

// Resize recomputes the viewport from the current screen size.
func (v *View) Resize() {
	w, h := v.screen.Size()
	h-- // status row
	if w < 1 || h < 1 {
		v.cols, v.rows = 0, 0
		return
	}
	worldW := 2 * v.arena.HalfW
	worldH := 2 * v.arena.HalfH
	v.scale = math32.Min(float32(w)/worldW, float32(h)*CellAspect/worldH)
	v.cols = int(worldW * v.scale)
	v.rows = int(worldH * v.scale / CellAspect)
	v.originX = (w - v.cols) / 2
	v.originY = (h - v.rows) / 2
}

// world returns the arena position at the center of cell (cx, cy), where
// cell coordinates are relative to the viewport.
func (v *View) world(cx, cy int) mgl32.Vec2 {
	x := -v.arena.HalfW + (float32(cx)+0.5)/v.scale
	y := v.arena.HalfH - (float32(cy)+0.5)*CellAspect/v.scale
	return mgl32.Vec2{x, y}
}

func colorOf(c mgl32.Vec4) tcell.Color {
	ch := func(f float32) int32 {
		if f < 0 {
			f = 0
		} else if f > 1 {
			f = 1
		}
		return int32(f*255 + 0.5)
	}
	return tcell.NewRGBColor(ch(c[0]), ch(c[1]), ch(c[2]))
}

// Draw renders one frame. Later bodies paint over earlier ones.
func (v *View) Draw(bodies []circles.Body, status string) {
	v.screen.Clear()
	frame := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for cx := -1; cx <= v.cols; cx++ {
		v.screen.SetContent(v.originX+cx, v.originY-1, '─', nil, frame)
		v.screen.SetContent(v.originX+cx, v.originY+v.rows, '─', nil, frame)
	}
	for cy := 0; cy < v.rows; cy++ {
		v.screen.SetContent(v.originX-1, v.originY+cy, '│', nil, frame)
		v.screen.SetContent(v.originX+v.cols, v.originY+cy, '│', nil, frame)
	}

	for i := range bodies {
		b := &bodies[i]
		style := tcell.StyleDefault.Background(colorOf(b.Color))
		for cy := 0; cy < v.rows; cy++ {
			for cx := 0; cx < v.cols; cx++ {
				if v.world(cx, cy).Sub(b.Center).Len() <= b.Radius {
					v.screen.SetContent(v.originX+cx, v.originY+cy, ' ', nil, style)
				}
			}
		}
	}

	_, h := v.screen.Size()
	for i, r := range status {
		v.screen.SetContent(i, h-1, r, nil, tcell.StyleDefault)
	}
	v.screen.Show()
}

// Run steps sim once per frame at fps until ctx is done or the user quits
// with Esc, q or Ctrl-C. Space pauses. The caller owns screen Init/Fini.
func Run(ctx context.Context, screen tcell.Screen, sim *circles.Simulation, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	view := NewView(screen, sim.Arena)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	paused := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				view.Resize()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
					paused = !paused
				}
			}
		case <-ticker.C:
			if !paused {
				sim.Step()
			}
			state := "running"
			if paused {
				state = "paused"
			}
			view.Draw(sim.Bodies, fmt.Sprintf(" %d bodies  tick %d  %s  [space] pause  [q] quit", len(sim.Bodies), sim.Ticks, state))
		}
	}
}
