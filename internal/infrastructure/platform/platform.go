// Package platform defines the capabilities the harness needs from a native
// multimedia library: a window with a renderer, a mixer, input devices and a clock.
//
// Two implementations exist: ebitenplatform drives a real window with Ebitengine,
// and headless runs a scripted session against a virtual clock.
package platform

import (
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/younwookim/harness/internal/domain/graphics"
	"github.com/younwookim/harness/internal/domain/input"
	"github.com/younwookim/harness/internal/domain/sound"
)

// ErrTerminated is returned by Frame.Tick to end Window.Run normally.
var ErrTerminated = errors.New("platform terminated")

// WindowConfig describes the window to open.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	Zoom   int
	VSync  bool
	// UpdateRate is the fixed update rate in Hz, a hint for backends that tick on their own.
	UpdateRate int
}

// AudioConfig describes the mixer to open.
type AudioConfig struct {
	Channels   int
	SampleRate int
}

// Backend is the entry point of a platform implementation.
type Backend interface {
	Init() error
	Quit() error
	Clock() Clock
	Input() Input
	OpenAudio(cfg AudioConfig) (Mixer, error)
	OpenWindow(cfg WindowConfig) (Window, error)
}

// Clock measures real time for the loop.
type Clock interface {
	// Now returns the time elapsed since the backend was initialized.
	Now() time.Duration
	Sleep(d time.Duration)
}

// Frame is one loop iteration as seen by a window driver.
type Frame interface {
	// Tick polls input and runs the due fixed updates. It reports whether a
	// draw is due and how long the driver may wait before the next iteration.
	// ErrTerminated ends the run without error.
	Tick() (draw bool, wait time.Duration, err error)
	// Render draws the frame onto the canvas. The driver presents it afterwards.
	Render(c Canvas) error
}

// Window is the native window.
type Window interface {
	Show() error
	Hide() error
	SetIcon(img image.Image) error
	// Run drives frame until Tick returns ErrTerminated or another error.
	Run(frame Frame) error
	NewRenderer() (Renderer, error)
	Close() error
}

// Renderer uploads textures for a window.
type Renderer interface {
	NewTexture(img image.Image) (graphics.NativeTexture, error)
	ReleaseTexture(tex graphics.NativeTexture)
	Close() error
}

// Canvas is the draw target of a single frame.
type Canvas interface {
	Clear()
	Draw(tex graphics.NativeTexture, src, dst graphics.Rect, tint color.RGBA)
}

// Mixer plays decoded samples.
type Mixer interface {
	// NewSample uploads 16-bit little-endian stereo PCM.
	NewSample(pcm []byte) (sound.NativeSample, error)
	ReleaseSample(s sound.NativeSample)
	// Play starts s and repeats it loops more times, or forever when loops is -1.
	Play(s sound.NativeSample, loops int) (Voice, error)
	Close() error
}

// Voice is one playing sample.
type Voice interface {
	IsPlaying() bool
	Stop()
}

// Event is a window or system event.
type Event uint8

const (
	EventNone Event = iota
	EventQuit
	EventFocusGained
	EventFocusLost
)

// String returns the string representation of the event
func (e Event) String() string {
	switch e {
	case EventQuit:
		return "quit"
	case EventFocusGained:
		return "focus-gained"
	case EventFocusLost:
		return "focus-lost"
	default:
		return "none"
	}
}

// Input exposes the keyboard and game controllers.
type Input interface {
	// PollEvents drains the pending events.
	PollEvents() []Event
	// Keyboard writes the state of every key into kb.
	Keyboard(kb *input.Keyboard)
	GamepadIDs() []int
	// IsGamepad reports whether device id has a known standard layout.
	IsGamepad(id int) bool
	OpenGamepad(id int) (Gamepad, error)
	// LoadGamepadMappings adds SDL game controller DB entries.
	LoadGamepadMappings(data []byte) error
}

// Gamepad is an opened game controller.
type Gamepad interface {
	Name() string
	Pressed(a input.Action) bool
	Close() error
}
