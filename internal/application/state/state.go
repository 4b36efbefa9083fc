// Package state tracks the lifecycle stage of a harness.
package state

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a stage cannot follow the current one.
var ErrInvalidTransition = errors.New("invalid stage transition")

// Stage represents the lifecycle stage of the harness
type Stage int

const (
	StageUninitialized Stage = iota
	StageInitialized
	StageRunning
	StageShuttingDown
	StageStopped
)

// String returns the string representation of the stage
func (s Stage) String() string {
	switch s {
	case StageUninitialized:
		return "Uninitialized"
	case StageInitialized:
		return "Initialized"
	case StageRunning:
		return "Running"
	case StageShuttingDown:
		return "ShuttingDown"
	case StageStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// CanTransition reports whether next may follow s.
// Shutdown may start from any live stage, so a harness that never ran can still be torn down.
func (s Stage) CanTransition(next Stage) bool {
	switch next {
	case StageInitialized:
		return s == StageUninitialized
	case StageRunning:
		return s == StageInitialized
	case StageShuttingDown:
		return s == StageInitialized || s == StageRunning
	case StageStopped:
		return s == StageShuttingDown
	default:
		return false
	}
}

// Machine holds the current stage.
type Machine struct {
	current Stage
}

// Current returns the current stage.
func (m *Machine) Current() Stage {
	return m.current
}

// Transition moves to next, or returns ErrInvalidTransition and stays.
func (m *Machine) Transition(next Stage) error {
	if !m.current.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.current, next)
	}
	m.current = next
	return nil
}
