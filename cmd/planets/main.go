// Command planets animates a sun with seven orbiting planets seen from
// above the orbital plane.
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
	"cgdemos/internal/orbit"
	"cgdemos/internal/render"
	"cgdemos/internal/view"
)

func init() {
	runtime.LockOSThread()
}

func printHelp() {
	fmt.Println("[help]")
	fmt.Println("- press ESC or 'q' to terminate the program")
	fmt.Println("- press F1 or 'h' to see help")
	fmt.Println("- press 'w' to toggle wireframe")
	fmt.Println("- press Home to reset camera")
	fmt.Println()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("planets: ")

	cfg, err := config.LoadWindow("planets", config.Window{Width: 1280, Height: 720}, os.Args[1:])
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
	window, err := render.NewWindow("planets", cfg.Width, cfg.Height)
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
	system := orbit.SolarSystem()
	cam := view.DefaultPlanetCamera()
	clock := view.NewClock(false)
	wireframe := false

	render.Loop(window, input, func(fbW, fbH int) {
		if input.JustPressed(window, glfw.KeyH) || input.JustPressed(window, glfw.KeyF1) {
			printHelp()
		}
		if input.Toggle(window, glfw.KeyW, &wireframe) {
			rend.SetWireframe(wireframe)
		}
		if input.JustPressed(window, glfw.KeyHome) {
			cam = view.DefaultPlanetCamera()
		}

		system.Advance(float32(clock.Tick(glfw.GetTime())))

		rend.BeginFrame()
		rend.BeginMeshes(render.MeshPass{
			Aspect:     mgl32.Ident4(),
			Projection: cam.Projection(fbW, fbH),
			View:       cam.View(),
		})
		for _, p := range system.Planets {
			rend.DrawMesh(sphere, p.Model)
		}
	})
	return nil
}
