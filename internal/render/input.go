package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Input turns polled key state into press edges.
type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Toggle flips *flag on a press edge of key and reports whether it did.
func (in *Input) Toggle(window *glfw.Window, key glfw.Key, flag *bool) bool {
	if !in.JustPressed(window, key) {
		return false
	}
	*flag = !*flag
	return true
}
