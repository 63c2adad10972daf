// Command circles bounces randomly spawned circles around a 3:2 arena, in
// a GL window or, with -term, in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/glfw/v3.3/glfw"

	"cgdemos/internal/audio"
	"cgdemos/internal/circles"
	"cgdemos/internal/config"
	"cgdemos/internal/mesh"
	"cgdemos/internal/render"
	"cgdemos/internal/term"
	"cgdemos/internal/view"
)

// circleSegments is the fan tessellation of every drawn circle.
const circleSegments = 64

func init() {
	// glfw and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("circles: ")

	defaults := config.Config{
		Seed:   uint64(time.Now().UnixNano()),
		Bodies: circles.DefaultBodyCount,
		Width:  720,
		Height: 480,
	}
	cfg, err := config.Load("circles", defaults, os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	bodies := circles.Spawn(cfg.Seed, circles.SpawnOptions{Count: cfg.Bodies, Strict: cfg.Strict})
	sim, err := circles.NewSimulation(bodies, circles.DefaultArena())
	if err != nil {
		log.Fatal(err)
	}
	sim.Events = circles.NewEventBus()

	if !cfg.Mute {
		snd, err := audio.Init()
		if err != nil {
			log.Printf("audio init failed (continuing without sound): %v", err)
		} else {
			snd.Attach(sim.Events)
		}
	}

	if cfg.Terminal {
		err = runTerminal(sim)
	} else {
		err = runWindow(cfg, sim)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runTerminal(sim *circles.Simulation) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return term.Run(ctx, screen, sim, 60)
}

func printHelp() {
	fmt.Println("[help]")
	fmt.Println("- press ESC or 'q' to terminate the program")
	fmt.Println("- press F1 or 'h' to see help")
	fmt.Println("- press 'i' to toggle between index buffering and simple vertex buffering")
	fmt.Println("- press 'w' to toggle wireframe")
	fmt.Println("- press space to pause")
	fmt.Println()
}

func runWindow(cfg config.Config, sim *circles.Simulation) error {
	window, err := render.NewWindow("circles", cfg.Width, cfg.Height)
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

	fan, err := mesh.Circle(circleSegments)
	if err != nil {
		return err
	}
	indexed := render.NewMesh(fan, mesh.CircleIndices(circleSegments))
	defer indexed.Destroy()
	flat := render.NewMesh(mesh.CircleTriangles(fan, circleSegments), nil)
	defer flat.Destroy()

	printHelp()
	log.Printf("seed %d, %d bodies", cfg.Seed, len(sim.Bodies))

	input := render.NewInput()
	useIndex := true
	wireframe := false
	paused := false
	var instances []circles.Instance

	render.Loop(window, input, func(fbW, fbH int) {
		if input.JustPressed(window, glfw.KeyH) || input.JustPressed(window, glfw.KeyF1) {
			printHelp()
		}
		if input.Toggle(window, glfw.KeyI, &useIndex) {
			mode := "vertex"
			if useIndex {
				mode = "index"
			}
			fmt.Printf("> using %s buffering\n", mode)
		}
		if input.Toggle(window, glfw.KeyW, &wireframe) {
			rend.SetWireframe(wireframe)
			mode := "solid"
			if wireframe {
				mode = "wireframe"
			}
			fmt.Printf("> using %s mode\n", mode)
		}
		input.Toggle(window, glfw.KeySpace, &paused)

		if !paused {
			sim.Step()
		}
		instances = sim.Instances(instances)

		circle := flat
		if useIndex {
			circle = indexed
		}
		rend.BeginFrame()
		rend.DrawCircles(circle, instances, view.AspectMatrix(fbW, fbH), true)
	})
	return nil
}
