package headless

import (
	"fmt"
	"sort"

	"github.com/younwookim/harness/internal/domain/input"
	"github.com/younwookim/harness/internal/infrastructure/platform"
)

var (
	_ platform.Input   = new(Input)
	_ platform.Gamepad = new(Gamepad)
)

// Input serves the keyboard and gamepads of the current step.
type Input struct {
	backend  *Backend
	keyboard input.Keyboard
	events   []platform.Event
	pads     map[int]*Gamepad
	mappings [][]byte
}

func newInput(b *Backend) *Input {
	return &Input{backend: b, pads: map[int]*Gamepad{}}
}

func (in *Input) connect(pad *Gamepad) {
	in.pads[pad.id] = pad
}

// apply loads the state of step.
func (in *Input) apply(step Step) {
	in.keyboard = input.Keyboard{}
	for _, k := range step.Keys {
		if k < input.KeyCount {
			in.keyboard[k] = true
		}
	}
	for _, pad := range in.pads {
		pad.pressed = map[input.Action]bool{}
		for _, a := range step.Buttons[pad.id] {
			pad.pressed[a] = true
		}
	}
	if step.Quit {
		in.events = append(in.events, platform.EventQuit)
	}
}

// Push queues an event for the next poll.
func (in *Input) Push(e platform.Event) {
	in.events = append(in.events, e)
}

// PollEvents implements platform.Input.
func (in *Input) PollEvents() []platform.Event {
	events := in.events
	in.events = nil
	return events
}

// Keyboard implements platform.Input.
func (in *Input) Keyboard(kb *input.Keyboard) {
	*kb = in.keyboard
}

// GamepadIDs implements platform.Input.
func (in *Input) GamepadIDs() []int {
	ids := make([]int, 0, len(in.pads))
	for id := range in.pads {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// IsGamepad implements platform.Input.
func (in *Input) IsGamepad(id int) bool {
	pad, ok := in.pads[id]
	return ok && pad.standard
}

// OpenGamepad implements platform.Input.
func (in *Input) OpenGamepad(id int) (platform.Gamepad, error) {
	pad, ok := in.pads[id]
	if !ok {
		return nil, fmt.Errorf("gamepad %d: not connected", id)
	}
	if pad.broken {
		return nil, fmt.Errorf("gamepad %d: %w", id, ErrInjected)
	}
	pad.opened++
	pad.closed = false
	return pad, nil
}

// LoadGamepadMappings implements platform.Input. The data is kept for inspection.
func (in *Input) LoadGamepadMappings(data []byte) error {
	in.mappings = append(in.mappings, data)
	return nil
}

// Mappings returns every controller DB passed to LoadGamepadMappings.
func (in *Input) Mappings() [][]byte {
	return in.mappings
}

// Gamepad returns the connected device id, or nil.
func (in *Input) Gamepad(id int) *Gamepad {
	return in.pads[id]
}

// Gamepad is a scripted game controller.
type Gamepad struct {
	id       int
	name     string
	standard bool
	broken   bool
	pressed  map[input.Action]bool
	opened   int
	closed   bool
}

func newGamepad(id int, name string, standard, broken bool) *Gamepad {
	return &Gamepad{
		id:       id,
		name:     name,
		standard: standard,
		broken:   broken,
		pressed:  map[input.Action]bool{},
	}
}

// Name implements platform.Gamepad.
func (g *Gamepad) Name() string {
	return g.name
}

// Pressed implements platform.Gamepad.
func (g *Gamepad) Pressed(a input.Action) bool {
	return !g.closed && g.pressed[a]
}

// Close implements platform.Gamepad.
func (g *Gamepad) Close() error {
	g.closed = true
	return nil
}

// Opened returns how many times the device was opened.
func (g *Gamepad) Opened() int {
	return g.opened
}

// Closed reports whether the device was closed after its last open.
func (g *Gamepad) Closed() bool {
	return g.closed
}
