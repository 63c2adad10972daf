// Package config resolves demo settings from defaults, then environment
// variables, then command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
)

const (
	EnvSeed   = "CGDEMOS_SEED"
	EnvBodies = "CGDEMOS_BODIES"
	EnvMute   = "CGDEMOS_MUTE"
)

var ErrInvalid = errors.New("invalid setting")

type Config struct {
	Seed     uint64
	Bodies   int
	Strict   bool // resample overlapping spawns
	Terminal bool // render with tcell instead of a GL window
	Mute     bool
	Width    int
	Height   int
}

// Load applies getenv overrides and then args to defaults. Unknown flags
// and malformed values are returned as errors; flag.ErrHelp passes through
// so callers can exit cleanly on -h.
func Load(name string, defaults Config, args []string, getenv func(string) string) (Config, error) {
	cfg := defaults

	if s := getenv(EnvSeed); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", EnvSeed, s, ErrInvalid)
		}
		cfg.Seed = v
	}
	if s := getenv(EnvBodies); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", EnvBodies, s, ErrInvalid)
		}
		cfg.Bodies = v
	}
	if s := getenv(EnvMute); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", EnvMute, s, ErrInvalid)
		}
		cfg.Mute = v
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for spawning bodies")
	fs.IntVar(&cfg.Bodies, "n", cfg.Bodies, "number of bodies")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "resample overlapping spawn positions")
	fs.BoolVar(&cfg.Terminal, "term", cfg.Terminal, "render in the terminal")
	fs.BoolVar(&cfg.Mute, "mute", cfg.Mute, "disable collision sounds")
	windowFlags(fs, &cfg.Width, &cfg.Height)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.Bodies < 1 {
		return cfg, fmt.Errorf("body count %d: %w", cfg.Bodies, ErrInvalid)
	}
	return cfg, checkWindow(cfg.Width, cfg.Height)
}

// Window is the whole configuration of the demos that only open a window.
type Window struct {
	Width  int
	Height int
}

// LoadWindow parses -width and -height over defaults. Every other flag is
// rejected as unknown.
func LoadWindow(name string, defaults Window, args []string) (Window, error) {
	w := defaults
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	windowFlags(fs, &w.Width, &w.Height)
	if err := fs.Parse(args); err != nil {
		return w, err
	}
	return w, checkWindow(w.Width, w.Height)
}

func windowFlags(fs *flag.FlagSet, width, height *int) {
	fs.IntVar(width, "width", *width, "window width in pixels")
	fs.IntVar(height, "height", *height, "window height in pixels")
}

func checkWindow(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("window %dx%d: %w", width, height, ErrInvalid)
	}
	return nil
}
