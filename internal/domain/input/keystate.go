package input

// Keyboard is a raw snapshot of the physical keyboard as reported by the platform.
type Keyboard [KeyCount]bool

// Pressed returns the pressed keys in key code order.
func (kb *Keyboard) Pressed() []KeyCode {
	var keys []KeyCode
	for code, down := range kb {
		if down {
			keys = append(keys, KeyCode(code))
		}
	}
	return keys
}

// KeyState is the key code -> pressed mapping read by update callbacks.
//
// It is refreshed wholesale from a Keyboard snapshot once per loop iteration.
// Game code may overwrite entries with Set; such writes last until the next
// refresh. Consume clears a key and keeps it cleared until the physical key has
// been released, which stops a held key from leaking into the next scene.
type KeyState struct {
	pressed  [KeyCount]bool
	consumed [KeyCount]bool
}

// Pressed reports whether key k is down.
func (s *KeyState) Pressed(k KeyCode) bool {
	if k >= KeyCount {
		return false
	}
	return s.pressed[k]
}

// Set overwrites the state of key k until the next refresh.
func (s *KeyState) Set(k KeyCode, down bool) {
	if k >= KeyCount {
		return
	}
	s.pressed[k] = down
}

// Consume marks k as released and ignores it until it is physically released.
func (s *KeyState) Consume(k KeyCode) {
	if k >= KeyCount {
		return
	}
	s.pressed[k] = false
	s.consumed[k] = true
}

// Refresh replaces every entry with the raw keyboard snapshot.
func (s *KeyState) Refresh(kb *Keyboard) {
	for code := range kb {
		down := kb[code]
		if !down {
			s.consumed[code] = false
		}
		s.pressed[code] = down && !s.consumed[code]
	}
}

// Snapshot returns the current key state as a Keyboard value.
func (s *KeyState) Snapshot() Keyboard {
	return Keyboard(s.pressed)
}

// Any reports whether at least one key is down.
func (s *KeyState) Any() bool {
	for _, down := range s.pressed {
		if down {
			return true
		}
	}
	return false
}
