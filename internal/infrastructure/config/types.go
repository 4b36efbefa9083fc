package config

import "time"

// Config is the root configuration of a harness
type Config struct {
	Window     WindowConfig     `json:"window" toml:"window"`
	Loop       LoopConfig       `json:"loop" toml:"loop"`
	Audio      AudioConfig      `json:"audio" toml:"audio"`
	Resources  ResourcesConfig  `json:"resources" toml:"resources"`
	Controller ControllerConfig `json:"controller" toml:"controller"`
	Log        LogConfig        `json:"log" toml:"log"`
}

// WindowConfig configures the window and its logical draw area
type WindowConfig struct {
	Title  string `json:"title" toml:"title"`
	Width  int    `json:"width" toml:"width"`   // Draw area width (pixels)
	Height int    `json:"height" toml:"height"` // Draw area height (pixels)
	Zoom   int    `json:"zoom" toml:"zoom"`     // Output scale, 1 disables
	VSync  bool   `json:"vsync" toml:"vsync"`
	Icon   string `json:"icon,omitempty" toml:"icon,omitempty"` // Resource name of the window icon
}

// LoopConfig configures the fixed-step loop
type LoopConfig struct {
	UpdateRate   int     `json:"updateRate" toml:"updateRate"`     // Fixed updates per second
	MaxFPS       int     `json:"maxFps" toml:"maxFps"`             // Draw cap, 0 is uncapped
	MaxFrameTime float64 `json:"maxFrameTime" toml:"maxFrameTime"` // Longest elapsed time accumulated per iteration (seconds), 0 disables
}

// UpdateInterval returns the fixed update step.
func (c LoopConfig) UpdateInterval() time.Duration {
	if c.UpdateRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.UpdateRate)
}

// DrawInterval returns the minimum time between draws, 0 when uncapped.
func (c LoopConfig) DrawInterval() time.Duration {
	if c.MaxFPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.MaxFPS)
}

// MaxFrameDuration returns MaxFrameTime as a duration.
func (c LoopConfig) MaxFrameDuration() time.Duration {
	return time.Duration(c.MaxFrameTime * float64(time.Second))
}

// AudioConfig configures the mixer
type AudioConfig struct {
	Channels   int `json:"channels" toml:"channels"`
	SampleRate int `json:"sampleRate" toml:"sampleRate"`
}

// ResourcesConfig configures resource lookup
type ResourcesConfig struct {
	SearchPaths []string `json:"searchPaths" toml:"searchPaths"` // Relative paths resolve against the application directory
	HotReload   bool     `json:"hotReload" toml:"hotReload"`
	GamepadDB   string   `json:"gamepadDb" toml:"gamepadDb"` // Resource name of an SDL game controller DB
}

// ControllerConfig configures game controllers
type ControllerConfig struct {
	Mapping map[string]string `json:"mapping" toml:"mapping"` // Action name -> key name
}

// LogConfig configures logging
type LogConfig struct {
	Level      string `json:"level" toml:"level"`
	Prefix     string `json:"prefix" toml:"prefix"`
	Timestamps bool   `json:"timestamps" toml:"timestamps"`
}
