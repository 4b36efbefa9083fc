package system

import (
	"github.com/charmbracelet/log"

	"github.com/younwookim/harness/internal/domain/input"
	"github.com/younwookim/harness/internal/infrastructure/platform"
)

// InputSystem turns platform events and device state into the key state
// read by update callbacks.
type InputSystem struct {
	platform    platform.Input
	keys        *input.KeyState
	controllers *ControllerSystem
	logger      *log.Logger
	raw         input.Keyboard
	merged      input.Keyboard
	focused     bool
}

// NewInputSystem creates a new input system. controllers may be nil.
func NewInputSystem(in platform.Input, keys *input.KeyState, controllers *ControllerSystem, logger *log.Logger) *InputSystem {
	return &InputSystem{
		platform:    in,
		keys:        keys,
		controllers: controllers,
		logger:      logger,
		focused:     true,
	}
}

// Poll drains the pending events, merges the held controller buttons into
// the keyboard snapshot and refreshes the key state from it. It reports
// whether a quit event arrived.
func (s *InputSystem) Poll() (quit bool) {
	for _, e := range s.platform.PollEvents() {
		switch e {
		case platform.EventQuit:
			quit = true
		case platform.EventFocusGained:
			s.focused = true
			s.logger.Debug("window focus gained")
		case platform.EventFocusLost:
			s.focused = false
			s.logger.Debug("window focus lost")
		}
	}

	s.platform.Keyboard(&s.raw)
	s.merged = s.raw
	if s.controllers != nil {
		s.controllers.Poll(&s.merged)
	}
	s.keys.Refresh(&s.merged)
	return quit
}

// Raw returns the keyboard snapshot of the last poll, before controllers and
// consumed keys were applied.
func (s *InputSystem) Raw() input.Keyboard {
	return s.raw
}

// Focused reports whether the window had focus at the last poll.
func (s *InputSystem) Focused() bool {
	return s.focused
}

// Buttons returns the held controller buttons of the last poll by device id.
func (s *InputSystem) Buttons() map[int][]input.Action {
	if s.controllers == nil {
		return nil
	}
	return s.controllers.Buttons()
}
