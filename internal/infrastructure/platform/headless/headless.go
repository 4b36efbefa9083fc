// Package headless is a scripted platform driver. It opens no window and plays
// no sound: every iteration consumes one Step from a Source, time runs on a
// virtual clock, and draw calls and lifecycle calls are recorded for inspection.
//
// It backs the tests and the deterministic replay mode of the demo.
package headless

import (
	"errors"
	"fmt"
	"time"

	"github.com/younwookim/harness/internal/infrastructure/platform"
)

var _ platform.Backend = new(Backend)

// ErrInjected is returned by calls configured to fail with FailOn.
var ErrInjected = errors.New("injected failure")

// Backend is the headless platform.
type Backend struct {
	source Source
	clock  *Clock
	input  *Input

	window   *Window
	mixer    *Mixer
	calls    []string
	failures map[string]bool
	frames   int
	draws    int
	ops      []Op
}

// Option configures a Backend.
type Option func(*Backend)

// WithGamepad connects a standard-layout gamepad.
func WithGamepad(id int, name string) Option {
	return func(b *Backend) {
		b.input.connect(newGamepad(id, name, true, false))
	}
}

// WithUnsupportedGamepad connects a device that reports a standard layout but fails to open.
func WithUnsupportedGamepad(id int, name string) Option {
	return func(b *Backend) {
		b.input.connect(newGamepad(id, name, true, true))
	}
}

// WithJoystick connects a device without a standard layout.
func WithJoystick(id int, name string) Option {
	return func(b *Backend) {
		b.input.connect(newGamepad(id, name, false, false))
	}
}

// FailOn makes the named lifecycle call fail, e.g. "window.open".
func FailOn(call string) Option {
	return func(b *Backend) {
		b.failures[call] = true
	}
}

// New creates a headless backend that plays source.
func New(source Source, opts ...Option) *Backend {
	b := &Backend{
		source:   source,
		clock:    &Clock{},
		failures: map[string]bool{},
	}
	b.input = newInput(b)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// record appends a lifecycle call and returns the configured failure for it.
func (b *Backend) record(call string) error {
	b.calls = append(b.calls, call)
	if b.failures[call] {
		return fmt.Errorf("%s: %w", call, ErrInjected)
	}
	return nil
}

// Init implements platform.Backend.
func (b *Backend) Init() error {
	return b.record("init")
}

// Quit implements platform.Backend.
func (b *Backend) Quit() error {
	return b.record("quit")
}

// Clock implements platform.Backend.
func (b *Backend) Clock() platform.Clock {
	return b.clock
}

// Input implements platform.Backend.
func (b *Backend) Input() platform.Input {
	return b.input
}

// OpenAudio implements platform.Backend.
func (b *Backend) OpenAudio(cfg platform.AudioConfig) (platform.Mixer, error) {
	if err := b.record("audio.open"); err != nil {
		return nil, err
	}
	b.mixer = &Mixer{backend: b, sampleRate: cfg.SampleRate}
	return b.mixer, nil
}

// OpenWindow implements platform.Backend.
func (b *Backend) OpenWindow(cfg platform.WindowConfig) (platform.Window, error) {
	if err := b.record("window.open"); err != nil {
		return nil, err
	}
	b.window = &Window{backend: b, config: cfg}
	return b.window, nil
}

// Calls returns the lifecycle calls in the order they were made.
func (b *Backend) Calls() []string {
	return append([]string(nil), b.calls...)
}

// Frames returns the number of iterations run.
func (b *Backend) Frames() int {
	return b.frames
}

// Draws returns the number of iterations that rendered.
func (b *Backend) Draws() int {
	return b.draws
}

// Ops returns the recorded canvas operations.
func (b *Backend) Ops() []Op {
	return append([]Op(nil), b.ops...)
}

// Devices returns the scripted input devices.
func (b *Backend) Devices() *Input {
	return b.input
}

// Window returns the opened window, or nil.
func (b *Backend) Window() *Window {
	return b.window
}

// Mixer returns the opened mixer, or nil.
func (b *Backend) Mixer() *Mixer {
	return b.mixer
}

// Clock is a virtual monotonic clock.
type Clock struct {
	now  time.Duration
	mark time.Duration
}

// Now implements platform.Clock.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Sleep implements platform.Clock. It advances the clock without blocking.
func (c *Clock) Sleep(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// step moves the clock so that at least elapsed has passed since the previous step.
// Time spent in Sleep counts towards it.
func (c *Clock) step(elapsed time.Duration) {
	if deadline := c.mark + elapsed; c.now < deadline {
		c.now = deadline
	}
	c.mark = c.now
}
