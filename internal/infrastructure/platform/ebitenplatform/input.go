package ebitenplatform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"github.com/younwookim/harness/internal/domain/input"
	"github.com/younwookim/harness/internal/infrastructure/platform"
)

var (
	_ platform.Input   = new(Input)
	_ platform.Gamepad = new(gamepad)
)

// buttonTable maps controller actions onto the standard gamepad layout.
var buttonTable = [input.ActionCount]ebiten.StandardGamepadButton{
	input.ActionUp:    ebiten.StandardGamepadButtonLeftTop,
	input.ActionDown:  ebiten.StandardGamepadButtonLeftBottom,
	input.ActionLeft:  ebiten.StandardGamepadButtonLeftLeft,
	input.ActionRight: ebiten.StandardGamepadButtonLeftRight,
	input.ActionA:     ebiten.StandardGamepadButtonRightBottom,
	input.ActionB:     ebiten.StandardGamepadButtonRightRight,
	input.ActionStart: ebiten.StandardGamepadButtonCenterRight,
	input.ActionBack:  ebiten.StandardGamepadButtonCenterLeft,
}

// Input reads the keyboard and gamepads through Ebitengine.
type Input struct {
	focused  bool
	closing  bool
	padIDs   []ebiten.GamepadID
	keyCache []ebiten.Key
}

func newInput() *Input {
	keys := make([]ebiten.Key, 0, len(keyTable))
	for k := range keyTable {
		keys = append(keys, k)
	}
	return &Input{focused: true, keyCache: keys}
}

// PollEvents implements platform.Input.
func (in *Input) PollEvents() []platform.Event {
	var events []platform.Event
	if ebiten.IsWindowBeingClosed() && !in.closing {
		in.closing = true
		events = append(events, platform.EventQuit)
	}
	if focused := ebiten.IsFocused(); focused != in.focused {
		in.focused = focused
		if focused {
			events = append(events, platform.EventFocusGained)
		} else {
			events = append(events, platform.EventFocusLost)
		}
	}
	return events
}

// Keyboard implements platform.Input.
func (in *Input) Keyboard(kb *input.Keyboard) {
	*kb = input.Keyboard{}
	for _, k := range in.keyCache {
		if ebiten.IsKeyPressed(k) {
			kb[keyTable[k]] = true
		}
	}
}

// GamepadIDs implements platform.Input.
func (in *Input) GamepadIDs() []int {
	in.padIDs = ebiten.AppendGamepadIDs(in.padIDs[:0])
	ids := make([]int, len(in.padIDs))
	for i, id := range in.padIDs {
		ids[i] = int(id)
	}
	return ids
}

// IsGamepad implements platform.Input.
func (in *Input) IsGamepad(id int) bool {
	return ebiten.IsStandardGamepadLayoutAvailable(ebiten.GamepadID(id))
}

// OpenGamepad implements platform.Input.
func (in *Input) OpenGamepad(id int) (platform.Gamepad, error) {
	gid := ebiten.GamepadID(id)
	if !ebiten.IsStandardGamepadLayoutAvailable(gid) {
		return nil, errors.Errorf("gamepad %d has no standard layout", id)
	}
	return &gamepad{id: gid, name: ebiten.GamepadName(gid)}, nil
}

// LoadGamepadMappings implements platform.Input.
func (in *Input) LoadGamepadMappings(data []byte) error {
	if _, err := ebiten.UpdateStandardGamepadLayoutMappings(string(data)); err != nil {
		return errors.Wrap(err, "update gamepad mappings")
	}
	return nil
}

type gamepad struct {
	id     ebiten.GamepadID
	name   string
	closed bool
}

func (g *gamepad) Name() string {
	return g.name
}

func (g *gamepad) Pressed(a input.Action) bool {
	if g.closed || a >= input.ActionCount {
		return false
	}
	return ebiten.IsStandardGamepadButtonPressed(g.id, buttonTable[a])
}

// Close marks the gamepad closed. Ebitengine keeps devices open on its own.
func (g *gamepad) Close() error {
	g.closed = true
	return nil
}
