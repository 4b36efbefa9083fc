// Package loop implements the fixed-timestep update/draw scheduling.
//
// Elapsed real time is accumulated and consumed in fixed UpdateInterval steps,
// each step running every update callback once. Drawing is decoupled from
// updating and may be capped to DrawInterval.
package loop

import (
	"fmt"
	"time"

	"github.com/younwookim/harness/internal/application/render"
)

// UpdateFunc advances the simulation by dt seconds.
type UpdateFunc func(dt float64) error

// DrawFunc draws the current state.
type DrawFunc func(r *render.Renderer) error

// HandlerID identifies a registered callback for removal.
type HandlerID uint64

// Config configures a Loop.
type Config struct {
	// UpdateInterval is the fixed update step.
	UpdateInterval time.Duration
	// MaxFrameTime caps the elapsed time accumulated per Advance, 0 disables.
	MaxFrameTime time.Duration
	// DrawInterval is the minimum time between draws, 0 is uncapped.
	DrawInterval time.Duration
}

type updateHandler struct {
	id HandlerID
	fn UpdateFunc
}

type drawHandler struct {
	id HandlerID
	fn DrawFunc
}

// Loop holds the callbacks and timing state of one game loop.
type Loop struct {
	cfg         Config
	updates     []updateHandler
	draws       []drawHandler
	nextID      HandlerID
	accumulator time.Duration
	sinceDraw   time.Duration
	drawn       bool
	quit        bool
	steps       uint64
}

// New creates a loop. A non-positive UpdateInterval falls back to 1/80 s.
func New(cfg Config) *Loop {
	if cfg.UpdateInterval <= 0 {
		cfg.UpdateInterval = time.Second / 80
	}
	if cfg.MaxFrameTime < 0 {
		cfg.MaxFrameTime = 0
	}
	if cfg.DrawInterval < 0 {
		cfg.DrawInterval = 0
	}
	return &Loop{cfg: cfg}
}

// Config returns the loop configuration.
func (l *Loop) Config() Config {
	return l.cfg
}

// RegisterUpdate appends fn to the update callbacks. The same function may be
// registered more than once; each registration runs and has its own id.
func (l *Loop) RegisterUpdate(fn UpdateFunc) HandlerID {
	l.nextID++
	l.updates = append(l.updates, updateHandler{id: l.nextID, fn: fn})
	return l.nextID
}

// RegisterDraw appends fn to the draw callbacks.
func (l *Loop) RegisterDraw(fn DrawFunc) HandlerID {
	l.nextID++
	l.draws = append(l.draws, drawHandler{id: l.nextID, fn: fn})
	return l.nextID
}

// RemoveHandler removes the callback registered as id. Unknown ids are ignored.
// A callback removed while callbacks run still runs in that pass.
func (l *Loop) RemoveHandler(id HandlerID) {
	for i, h := range l.updates {
		if h.id == id {
			l.updates = append(l.updates[:i:i], l.updates[i+1:]...)
			return
		}
	}
	for i, h := range l.draws {
		if h.id == id {
			l.draws = append(l.draws[:i:i], l.draws[i+1:]...)
			return
		}
	}
}

// Handlers returns the number of registered update and draw callbacks.
func (l *Loop) Handlers() (updates, draws int) {
	return len(l.updates), len(l.draws)
}

// RequestQuit asks the loop to stop at the start of the next iteration.
func (l *Loop) RequestQuit() {
	l.quit = true
}

// QuitRequested reports whether RequestQuit was called.
func (l *Loop) QuitRequested() bool {
	return l.quit
}

// Accumulator returns the time not yet consumed by update steps.
func (l *Loop) Accumulator() time.Duration {
	return l.accumulator
}

// Steps returns the number of fixed steps run so far.
func (l *Loop) Steps() uint64 {
	return l.steps
}

// Advance accumulates elapsed real time and runs the update callbacks once per
// whole UpdateInterval available. Negative elapsed counts as zero; elapsed
// beyond MaxFrameTime is dropped so a long stall cannot queue unbounded steps.
// The first callback error stops dispatch and is returned.
func (l *Loop) Advance(elapsed time.Duration) (int, error) {
	if elapsed < 0 {
		elapsed = 0
	}
	if l.cfg.MaxFrameTime > 0 && elapsed > l.cfg.MaxFrameTime {
		elapsed = l.cfg.MaxFrameTime
	}
	l.accumulator += elapsed
	l.sinceDraw += elapsed

	dt := l.cfg.UpdateInterval.Seconds()
	steps := 0
	for l.accumulator >= l.cfg.UpdateInterval {
		// registrations made by a callback apply from the next step
		handlers := l.updates
		for _, h := range handlers {
			if err := h.fn(dt); err != nil {
				return steps, fmt.Errorf("update handler %d: %w", h.id, err)
			}
		}
		l.accumulator -= l.cfg.UpdateInterval
		l.steps++
		steps++
	}
	return steps, nil
}

// DrawDue reports whether a draw is due. When it is not, wait is the time left
// until it will be. The first call is always due.
func (l *Loop) DrawDue() (due bool, wait time.Duration) {
	if l.cfg.DrawInterval == 0 || !l.drawn {
		return true, 0
	}
	if l.sinceDraw >= l.cfg.DrawInterval {
		return true, 0
	}
	return false, l.cfg.DrawInterval - l.sinceDraw
}

// Draw runs the draw callbacks in registration order and resets the frame cap.
func (l *Loop) Draw(r *render.Renderer) error {
	l.drawn = true
	if l.cfg.DrawInterval > 0 && l.sinceDraw >= l.cfg.DrawInterval {
		// keep the cadence instead of drifting by the overshoot
		l.sinceDraw %= l.cfg.DrawInterval
	} else {
		l.sinceDraw = 0
	}

	handlers := l.draws
	for _, h := range handlers {
		if err := h.fn(r); err != nil {
			return fmt.Errorf("draw handler %d: %w", h.id, err)
		}
	}
	return nil
}
