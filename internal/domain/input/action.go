package input

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMappingKey is returned when a controller mapping names an unsupported action.
	ErrInvalidMappingKey = errors.New("unsupported controller action")
	// ErrUnknownKey is returned when a key name has no key code.
	ErrUnknownKey = errors.New("unknown key name")
)

// Action is a logical controller button that can be mapped onto a key.
type Action uint8

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionA
	ActionB
	ActionStart
	ActionBack

	// ActionCount is the number of actions, not an action.
	ActionCount
)

var actionNames = [ActionCount]string{
	ActionUp:    "up",
	ActionDown:  "down",
	ActionLeft:  "left",
	ActionRight: "right",
	ActionA:     "a",
	ActionB:     "b",
	ActionStart: "start",
	ActionBack:  "back",
}

// String returns the mapping name of the action.
func (a Action) String() string {
	if a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction returns the action for a mapping name such as "start".
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMappingKey, name)
}

// Mapping binds every action to a key code.
type Mapping [ActionCount]KeyCode

// DefaultMapping is the binding a controller starts with.
var DefaultMapping = Mapping{
	ActionUp:    KeyUp,
	ActionDown:  KeyDown,
	ActionLeft:  KeyLeft,
	ActionRight: KeyRight,
	ActionA:     KeyC,
	ActionB:     KeyV,
	ActionStart: KeyS,
	ActionBack:  KeyEscape,
}

// Apply returns a copy of m with the named entries rebound. Entries are
// validated before anything changes, so a bad entry leaves the result unused.
func (m Mapping) Apply(entries map[string]string) (Mapping, error) {
	out := m
	for action, key := range entries {
		a, err := ParseAction(action)
		if err != nil {
			return m, err
		}
		code, err := ParseKey(key)
		if err != nil {
			return m, fmt.Errorf("mapping %s: %w", action, err)
		}
		out[a] = code
	}
	return out, nil
}
