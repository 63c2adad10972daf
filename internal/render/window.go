package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// NewWindow creates a 4.1 core context window with vsync and loads the GL
// entry points. The caller must be on the main OS thread and calls
// glfw.Terminate when done.
func NewWindow(title string, width, height int) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	return window, nil
}

// Loop polls events and calls frame with the framebuffer size until the
// window is asked to close. Esc and q close it. A minimized window sleeps
// in WaitEvents until it is restored.
func Loop(window *glfw.Window, in *Input, frame func(fbW, fbH int)) {
	for !window.ShouldClose() {
		glfw.PollEvents()
		if in.JustPressed(window, glfw.KeyEscape) || in.JustPressed(window, glfw.KeyQ) {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if minimized(fbW, fbH) {
			glfw.WaitEvents()
			continue
		}
		gl.Viewport(0, 0, int32(fbW), int32(fbH))
		frame(fbW, fbH)
		window.SwapBuffers()
	}
}

// minimized reports the empty framebuffer glfw gives an iconified window.
func minimized(fbW, fbH int) bool {
	return fbW <= 0 || fbH <= 0
}
