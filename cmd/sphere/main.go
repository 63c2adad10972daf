// Command sphere draws a textured-coordinate unit sphere that can spin
// about its z axis.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"cgdemos/internal/config"
	"cgdemos/internal/mesh"
	"cgdemos/internal/render"
	"cgdemos/internal/view"
)

// spinRate is the rotation speed in radians per second of running clock.
const spinRate = 0.5

func init() {
	runtime.LockOSThread()
}

var tcModes = []string{"(tc.xy,0)", "(tc.xxx)", "(tc.yyy)"}

func printHelp() {
	fmt.Println("[help]")
	fmt.Println("- press ESC or 'q' to terminate the program")
	fmt.Println("- press F1 or 'h' to see help")
	fmt.Println("- press 'w' to toggle wireframe")
	fmt.Println("- press 'r' to toggle rotation")
	fmt.Println("- press 'd' to toggle (tc.xy,0) > (tc.xxx) > (tc.yyy)")
	fmt.Println()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("sphere: ")

	cfg, err := config.LoadWindow("sphere", config.Window{Width: 1280, Height: 720}, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Window) error {
	window, err := render.NewWindow("sphere", cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	rend, err := render.NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	verts, err := mesh.Sphere(mesh.SphereSlices, mesh.SphereStacks)
	if err != nil {
		return err
	}
	sphere := render.NewMesh(verts, mesh.SphereIndices(mesh.SphereSlices, mesh.SphereStacks))
	defer sphere.Destroy()

	printHelp()

	input := render.NewInput()
	clock := view.NewClock(true)
	var tcMode int32
	wireframe := false

	render.Loop(window, input, func(fbW, fbH int) {
		if input.JustPressed(window, glfw.KeyH) || input.JustPressed(window, glfw.KeyF1) {
			printHelp()
		}
		if input.Toggle(window, glfw.KeyW, &wireframe) {
			rend.SetWireframe(wireframe)
		}
		if input.JustPressed(window, glfw.KeyR) {
			clock.Toggle()
		}
		if input.JustPressed(window, glfw.KeyD) {
			tcMode = (tcMode + 1) % int32(len(tcModes))
			fmt.Printf("> using %s as color\n", tcModes[tcMode])
		}

		elapsed := clock.Tick(glfw.GetTime())
		model := mgl32.HomogRotate3DZ(float32(elapsed) * spinRate)

		rend.BeginFrame()
		rend.BeginMeshes(render.MeshPass{
			Aspect:     view.AspectMatrix(fbW, fbH),
			Projection: mgl32.Ident4(),
			View:       view.SphereViewProjection(),
			TcMode:     tcMode,
		})
		rend.DrawMesh(sphere, model)
	})
	return nil
}
