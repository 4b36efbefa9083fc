package headless

import (
	"time"

	"github.com/younwookim/harness/internal/domain/input"
)

// Step is the input of one loop iteration.
type Step struct {
	// Elapsed is the real time the loop observes since the previous iteration.
	Elapsed time.Duration
	// Keys are the keys held during the iteration.
	Keys []input.KeyCode
	// Buttons are the held gamepad actions per device id.
	Buttons map[int][]input.Action
	// Quit delivers a quit event, like closing the window.
	Quit bool
}

// Source yields the steps of a session.
type Source interface {
	Next() (Step, bool)
}

// Script is a fixed list of steps.
type Script struct {
	steps []Step
	pos   int
}

// NewScript creates a script from steps.
func NewScript(steps ...Step) *Script {
	return &Script{steps: steps}
}

// Repeat returns n copies of step.
func Repeat(n int, step Step) []Step {
	steps := make([]Step, n)
	for i := range steps {
		steps[i] = step
	}
	return steps
}

// Next implements Source.
func (s *Script) Next() (Step, bool) {
	if s.pos >= len(s.steps) {
		return Step{}, false
	}
	step := s.steps[s.pos]
	s.pos++
	return step, true
}

// Remaining returns the number of steps not yet played.
func (s *Script) Remaining() int {
	return len(s.steps) - s.pos
}
