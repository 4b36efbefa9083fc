package system

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/younwookim/harness/internal/application/resource"
	"github.com/younwookim/harness/internal/domain/input"
	"github.com/younwookim/harness/internal/infrastructure/platform"
)

// ErrUnsupportedController is returned for a gamepad that cannot be opened.
var ErrUnsupportedController = errors.New("unsupported controller")

// Controller maps the buttons of one gamepad onto key codes.
type Controller struct {
	id      int
	pad     platform.Gamepad
	mapping input.Mapping
	latched [input.ActionCount]bool
	owner   *ControllerSystem
	closed  bool
}

// ID returns the platform device id.
func (c *Controller) ID() int {
	return c.id
}

// Name returns the device name.
func (c *Controller) Name() string {
	return c.pad.Name()
}

// SetMapping rebinds actions to keys, e.g. {"start": "KEY_ENTER"}.
// Nothing changes if any entry is invalid.
func (c *Controller) SetMapping(m map[string]string) error {
	next, err := c.mapping.Apply(m)
	if err != nil {
		return err
	}
	c.release()
	c.mapping = next
	return nil
}

// Mapping returns the current binding.
func (c *Controller) Mapping() map[input.Action]input.KeyCode {
	out := make(map[input.Action]input.KeyCode, input.ActionCount)
	for a, k := range c.mapping {
		out[input.Action(a)] = k
	}
	return out
}

// Poll reads the buttons and marks the mapped key of every held button on
// kb. Merged into the keyboard snapshot before the key state refresh, a held
// button reads as a held key and is masked by KeyState.Consume like one.
func (c *Controller) Poll(kb *input.Keyboard) {
	if c.closed {
		return
	}
	for i := range c.latched {
		a := input.Action(i)
		down := c.pad.Pressed(a)
		if down != c.latched[a] {
			c.latched[a] = down
			c.owner.logger.Debug("controller button", "id", c.id, "action", a, "down", down)
		}
		if k := c.mapping[a]; down && kb != nil && k.Valid() {
			kb[k] = true
		}
	}
}

// Held returns the buttons down at the last poll in action order.
func (c *Controller) Held() []input.Action {
	var held []input.Action
	for i, down := range c.latched {
		if down {
			held = append(held, input.Action(i))
		}
	}
	return held
}

// release forgets the latched buttons. Their keys clear at the next refresh.
func (c *Controller) release() {
	c.latched = [input.ActionCount]bool{}
}

// Close releases the device. Calling it again is a no-op.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.release()
	if c.owner != nil {
		delete(c.owner.open, c.id)
	}
	return c.pad.Close()
}

// ControllerSystem opens gamepads and polls them every iteration.
type ControllerSystem struct {
	platform platform.Input
	mapping  input.Mapping
	logger   *log.Logger
	open     map[int]*Controller
}

// NewControllerSystem creates a controller system. New controllers start with mapping.
func NewControllerSystem(in platform.Input, mapping input.Mapping, logger *log.Logger) *ControllerSystem {
	return &ControllerSystem{
		platform: in,
		mapping:  mapping,
		logger:   logger,
		open:     make(map[int]*Controller),
	}
}

// HasControllers reports whether any gamepad is connected.
func (s *ControllerSystem) HasControllers() bool {
	return len(s.platform.GamepadIDs()) > 0
}

// Controllers returns a controller for every connected gamepad with a
// standard layout. Each device is opened once and cached by id. Devices that
// fail to open are reported as ErrUnsupportedController next to the ones
// that opened.
func (s *ControllerSystem) Controllers() ([]*Controller, error) {
	var (
		out  []*Controller
		errs []error
	)
	ids := append([]int(nil), s.platform.GamepadIDs()...)
	sort.Ints(ids)
	for _, id := range ids {
		if c, ok := s.open[id]; ok {
			out = append(out, c)
			continue
		}
		if !s.platform.IsGamepad(id) {
			s.logger.Debug("device without a standard layout skipped", "id", id)
			continue
		}
		pad, err := s.platform.OpenGamepad(id)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: device %d: %w", ErrUnsupportedController, id, err))
			continue
		}
		c := &Controller{
			id:      id,
			pad:     pad,
			mapping: s.mapping,
			owner:   s,
		}
		s.open[id] = c
		s.logger.Info("controller opened", "id", id, "name", pad.Name())
		out = append(out, c)
	}
	return out, errors.Join(errs...)
}

// Poll polls every open controller in device id order and merges their
// held buttons into kb.
func (s *ControllerSystem) Poll(kb *input.Keyboard) {
	for _, id := range s.ids() {
		s.open[id].Poll(kb)
	}
}

// Buttons returns the held buttons of every open controller by device id.
// Controllers without a held button are left out.
func (s *ControllerSystem) Buttons() map[int][]input.Action {
	out := make(map[int][]input.Action, len(s.open))
	for id, c := range s.open {
		if held := c.Held(); len(held) > 0 {
			out[id] = held
		}
	}
	return out
}

// CloseAll closes every open controller.
func (s *ControllerSystem) CloseAll() error {
	var errs []error
	for _, id := range s.ids() {
		if err := s.open[id].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open returns the number of open controllers.
func (s *ControllerSystem) Open() int {
	return len(s.open)
}

func (s *ControllerSystem) ids() []int {
	ids := make([]int, 0, len(s.open))
	for id := range s.open {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// LoadGamepadMappings hands the controller database name to the platform
// when the registry can find it. It reports whether a database was loaded.
func LoadGamepadMappings(res *resource.Registry, in platform.Input, name string) (bool, error) {
	if name == "" {
		return false, nil
	}
	rc, err := res.Open(name)
	if errors.Is(err, resource.ErrResourceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := in.LoadGamepadMappings(data); err != nil {
		return false, fmt.Errorf("load %s: %w", name, err)
	}
	return true, nil
}
