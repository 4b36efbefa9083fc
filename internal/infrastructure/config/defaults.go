package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/younwookim/harness/internal/domain/input"
)

var (
	// ErrInvalidConfig is returned by Validate.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnsupportedFormat is returned for a configuration file that is neither JSON nor TOML.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Harness",
			Width:  320,
			Height: 200,
			Zoom:   1,
			VSync:  true,
		},
		Loop: LoopConfig{
			UpdateRate:   80,
			MaxFPS:       0,
			MaxFrameTime: 0.25,
		},
		Audio: AudioConfig{
			Channels:   6,
			SampleRate: 44100,
		},
		Resources: ResourcesConfig{
			SearchPaths: []string{"data"},
		},
		Controller: ControllerConfig{
			Mapping: fillMapping(nil),
		},
		Log: LogConfig{
			Level:      "info",
			Timestamps: true,
		},
	}
}

// fillMapping adds the default binding of every action missing from m.
func fillMapping(m map[string]string) map[string]string {
	if m == nil {
		m = make(map[string]string, input.ActionCount)
	}
	for a, code := range input.DefaultMapping {
		name := input.Action(a).String()
		if _, ok := m[name]; !ok {
			m[name] = code.String()
		}
	}
	return m
}

// Validate rejects sizes and rates that cannot run.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Window.Zoom <= 0:
		return fmt.Errorf("%w: window zoom %d", ErrInvalidConfig, c.Window.Zoom)
	case c.Loop.UpdateRate <= 0:
		return fmt.Errorf("%w: update rate %d", ErrInvalidConfig, c.Loop.UpdateRate)
	case c.Loop.MaxFPS < 0:
		return fmt.Errorf("%w: max fps %d", ErrInvalidConfig, c.Loop.MaxFPS)
	case c.Loop.MaxFrameTime < 0:
		return fmt.Errorf("%w: max frame time %g", ErrInvalidConfig, c.Loop.MaxFrameTime)
	case c.Audio.Channels <= 0:
		return fmt.Errorf("%w: audio channels %d", ErrInvalidConfig, c.Audio.Channels)
	case c.Audio.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.Audio.SampleRate)
	}

	if _, err := input.DefaultMapping.Apply(c.Controller.Mapping); err != nil {
		return fmt.Errorf("%w: controller mapping: %w", ErrInvalidConfig, err)
	}
	return nil
}

// AppDir returns the directory of the running executable, walking up to the
// nearest directory that exists.
func AppDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	dir := filepath.Dir(exe)
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}

// ResolveSearchPaths returns the search paths with relative entries joined to base.
func (c ResourcesConfig) ResolveSearchPaths(base string) []string {
	paths := make([]string, 0, len(c.SearchPaths))
	for _, p := range c.SearchPaths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		paths = append(paths, filepath.Clean(p))
	}
	return paths
}
