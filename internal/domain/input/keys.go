package input

import "fmt"

// KeyCode identifies a physical key. The values follow the SDL scancode order so
// names stay familiar, but they are dense and start at zero so a KeyState can be
// a fixed array.
type KeyCode uint8

const (
	KeyUnknown KeyCode = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeySpace
	KeyMinus
	KeyEquals
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeySemicolon
	KeyApostrophe
	KeyGrave
	KeyComma
	KeyPeriod
	KeySlash
	KeyCapsLock
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyInsert
	KeyHome
	KeyPageUp
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyNumLock
	KeyKPDivide
	KeyKPMultiply
	KeyKPMinus
	KeyKPPlus
	KeyKPEnter
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKP0
	KeyKPPeriod
	KeyNonUSBackslash
	KeyApplication
	KeyKPEquals
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24
	KeyLCtrl
	KeyLShift
	KeyLAlt
	KeyLGui
	KeyRCtrl
	KeyRShift
	KeyRAlt
	KeyRGui

	// KeyCount is the number of key codes, not a key.
	KeyCount
)

var keyNames = [KeyCount]string{
	KeyUnknown:        "KEY_UNKNOWN",
	KeyA:              "KEY_A",
	KeyB:              "KEY_B",
	KeyC:              "KEY_C",
	KeyD:              "KEY_D",
	KeyE:              "KEY_E",
	KeyF:              "KEY_F",
	KeyG:              "KEY_G",
	KeyH:              "KEY_H",
	KeyI:              "KEY_I",
	KeyJ:              "KEY_J",
	KeyK:              "KEY_K",
	KeyL:              "KEY_L",
	KeyM:              "KEY_M",
	KeyN:              "KEY_N",
	KeyO:              "KEY_O",
	KeyP:              "KEY_P",
	KeyQ:              "KEY_Q",
	KeyR:              "KEY_R",
	KeyS:              "KEY_S",
	KeyT:              "KEY_T",
	KeyU:              "KEY_U",
	KeyV:              "KEY_V",
	KeyW:              "KEY_W",
	KeyX:              "KEY_X",
	KeyY:              "KEY_Y",
	KeyZ:              "KEY_Z",
	Key1:              "KEY_1",
	Key2:              "KEY_2",
	Key3:              "KEY_3",
	Key4:              "KEY_4",
	Key5:              "KEY_5",
	Key6:              "KEY_6",
	Key7:              "KEY_7",
	Key8:              "KEY_8",
	Key9:              "KEY_9",
	Key0:              "KEY_0",
	KeyEnter:          "KEY_ENTER",
	KeyEscape:         "KEY_ESCAPE",
	KeyBackspace:      "KEY_BACKSPACE",
	KeyTab:            "KEY_TAB",
	KeySpace:          "KEY_SPACE",
	KeyMinus:          "KEY_MINUS",
	KeyEquals:         "KEY_EQUALS",
	KeyLeftBracket:    "KEY_LEFTBRACKET",
	KeyRightBracket:   "KEY_RIGHTBRACKET",
	KeyBackslash:      "KEY_BACKSLASH",
	KeySemicolon:      "KEY_SEMICOLON",
	KeyApostrophe:     "KEY_APOSTROPHE",
	KeyGrave:          "KEY_GRAVE",
	KeyComma:          "KEY_COMMA",
	KeyPeriod:         "KEY_PERIOD",
	KeySlash:          "KEY_SLASH",
	KeyCapsLock:       "KEY_CAPSLOCK",
	KeyF1:             "KEY_F1",
	KeyF2:             "KEY_F2",
	KeyF3:             "KEY_F3",
	KeyF4:             "KEY_F4",
	KeyF5:             "KEY_F5",
	KeyF6:             "KEY_F6",
	KeyF7:             "KEY_F7",
	KeyF8:             "KEY_F8",
	KeyF9:             "KEY_F9",
	KeyF10:            "KEY_F10",
	KeyF11:            "KEY_F11",
	KeyF12:            "KEY_F12",
	KeyPrintScreen:    "KEY_PRINTSCREEN",
	KeyScrollLock:     "KEY_SCROLLLOCK",
	KeyPause:          "KEY_PAUSE",
	KeyInsert:         "KEY_INSERT",
	KeyHome:           "KEY_HOME",
	KeyPageUp:         "KEY_PAGEUP",
	KeyDelete:         "KEY_DELETE",
	KeyEnd:            "KEY_END",
	KeyPageDown:       "KEY_PAGEDOWN",
	KeyRight:          "KEY_RIGHT",
	KeyLeft:           "KEY_LEFT",
	KeyDown:           "KEY_DOWN",
	KeyUp:             "KEY_UP",
	KeyNumLock:        "KEY_NUMLOCKCLEAR",
	KeyKPDivide:       "KEY_KP_DIVIDE",
	KeyKPMultiply:     "KEY_KP_MULTIPLY",
	KeyKPMinus:        "KEY_KP_MINUS",
	KeyKPPlus:         "KEY_KP_PLUS",
	KeyKPEnter:        "KEY_KP_ENTER",
	KeyKP1:            "KEY_KP_1",
	KeyKP2:            "KEY_KP_2",
	KeyKP3:            "KEY_KP_3",
	KeyKP4:            "KEY_KP_4",
	KeyKP5:            "KEY_KP_5",
	KeyKP6:            "KEY_KP_6",
	KeyKP7:            "KEY_KP_7",
	KeyKP8:            "KEY_KP_8",
	KeyKP9:            "KEY_KP_9",
	KeyKP0:            "KEY_KP_0",
	KeyKPPeriod:       "KEY_KP_PERIOD",
	KeyNonUSBackslash: "KEY_NONUSBACKSLASH",
	KeyApplication:    "KEY_APPLICATION",
	KeyKPEquals:       "KEY_KP_EQUALS",
	KeyF13:            "KEY_F13",
	KeyF14:            "KEY_F14",
	KeyF15:            "KEY_F15",
	KeyF16:            "KEY_F16",
	KeyF17:            "KEY_F17",
	KeyF18:            "KEY_F18",
	KeyF19:            "KEY_F19",
	KeyF20:            "KEY_F20",
	KeyF21:            "KEY_F21",
	KeyF22:            "KEY_F22",
	KeyF23:            "KEY_F23",
	KeyF24:            "KEY_F24",
	KeyLCtrl:          "KEY_LCTRL",
	KeyLShift:         "KEY_LSHIFT",
	KeyLAlt:           "KEY_LALT",
	KeyLGui:           "KEY_LGUI",
	KeyRCtrl:          "KEY_RCTRL",
	KeyRShift:         "KEY_RSHIFT",
	KeyRAlt:           "KEY_RALT",
	KeyRGui:           "KEY_RGUI",
}

// keyAliases are accepted by ParseKey in addition to the canonical names.
var keyAliases = map[string]KeyCode{
	"KEY_RETURN":    KeyEnter,
	"KEY_EQUAL":     KeyEquals,
	"KEY_BACKQUOTE": KeyGrave,
}

var keysByName = func() map[string]KeyCode {
	m := make(map[string]KeyCode, len(keyNames)+len(keyAliases))
	for code, name := range keyNames {
		m[name] = KeyCode(code)
	}
	for name, code := range keyAliases {
		m[name] = code
	}
	return m
}()

// String returns the SDL-style name of the key, e.g. "KEY_ENTER".
func (k KeyCode) String() string {
	if k >= KeyCount {
		return "KEY_UNKNOWN"
	}
	return keyNames[k]
}

// Valid reports whether k names a real key.
func (k KeyCode) Valid() bool {
	return k > KeyUnknown && k < KeyCount
}

// ParseKey returns the key code for an SDL-style key name such as "KEY_ESCAPE".
func ParseKey(name string) (KeyCode, error) {
	code, ok := keysByName[name]
	if !ok || code == KeyUnknown {
		return KeyUnknown, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return code, nil
}
