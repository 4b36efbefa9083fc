package ebitenplatform

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/harness/internal/domain/input"
)

// keyTable maps Ebitengine keys onto the harness key codes.
var keyTable = map[ebiten.Key]input.KeyCode{
	ebiten.KeyA:              input.KeyA,
	ebiten.KeyB:              input.KeyB,
	ebiten.KeyC:              input.KeyC,
	ebiten.KeyD:              input.KeyD,
	ebiten.KeyE:              input.KeyE,
	ebiten.KeyF:              input.KeyF,
	ebiten.KeyG:              input.KeyG,
	ebiten.KeyH:              input.KeyH,
	ebiten.KeyI:              input.KeyI,
	ebiten.KeyJ:              input.KeyJ,
	ebiten.KeyK:              input.KeyK,
	ebiten.KeyL:              input.KeyL,
	ebiten.KeyM:              input.KeyM,
	ebiten.KeyN:              input.KeyN,
	ebiten.KeyO:              input.KeyO,
	ebiten.KeyP:              input.KeyP,
	ebiten.KeyQ:              input.KeyQ,
	ebiten.KeyR:              input.KeyR,
	ebiten.KeyS:              input.KeyS,
	ebiten.KeyT:              input.KeyT,
	ebiten.KeyU:              input.KeyU,
	ebiten.KeyV:              input.KeyV,
	ebiten.KeyW:              input.KeyW,
	ebiten.KeyX:              input.KeyX,
	ebiten.KeyY:              input.KeyY,
	ebiten.KeyZ:              input.KeyZ,
	ebiten.KeyDigit1:         input.Key1,
	ebiten.KeyDigit2:         input.Key2,
	ebiten.KeyDigit3:         input.Key3,
	ebiten.KeyDigit4:         input.Key4,
	ebiten.KeyDigit5:         input.Key5,
	ebiten.KeyDigit6:         input.Key6,
	ebiten.KeyDigit7:         input.Key7,
	ebiten.KeyDigit8:         input.Key8,
	ebiten.KeyDigit9:         input.Key9,
	ebiten.KeyDigit0:         input.Key0,
	ebiten.KeyEnter:          input.KeyEnter,
	ebiten.KeyEscape:         input.KeyEscape,
	ebiten.KeyBackspace:      input.KeyBackspace,
	ebiten.KeyTab:            input.KeyTab,
	ebiten.KeySpace:          input.KeySpace,
	ebiten.KeyMinus:          input.KeyMinus,
	ebiten.KeyEqual:          input.KeyEquals,
	ebiten.KeyBracketLeft:    input.KeyLeftBracket,
	ebiten.KeyBracketRight:   input.KeyRightBracket,
	ebiten.KeyBackslash:      input.KeyBackslash,
	ebiten.KeySemicolon:      input.KeySemicolon,
	ebiten.KeyQuote:          input.KeyApostrophe,
	ebiten.KeyBackquote:      input.KeyGrave,
	ebiten.KeyComma:          input.KeyComma,
	ebiten.KeyPeriod:         input.KeyPeriod,
	ebiten.KeySlash:          input.KeySlash,
	ebiten.KeyCapsLock:       input.KeyCapsLock,
	ebiten.KeyF1:             input.KeyF1,
	ebiten.KeyF2:             input.KeyF2,
	ebiten.KeyF3:             input.KeyF3,
	ebiten.KeyF4:             input.KeyF4,
	ebiten.KeyF5:             input.KeyF5,
	ebiten.KeyF6:             input.KeyF6,
	ebiten.KeyF7:             input.KeyF7,
	ebiten.KeyF8:             input.KeyF8,
	ebiten.KeyF9:             input.KeyF9,
	ebiten.KeyF10:            input.KeyF10,
	ebiten.KeyF11:            input.KeyF11,
	ebiten.KeyF12:            input.KeyF12,
	ebiten.KeyPrintScreen:    input.KeyPrintScreen,
	ebiten.KeyScrollLock:     input.KeyScrollLock,
	ebiten.KeyPause:          input.KeyPause,
	ebiten.KeyInsert:         input.KeyInsert,
	ebiten.KeyHome:           input.KeyHome,
	ebiten.KeyPageUp:         input.KeyPageUp,
	ebiten.KeyDelete:         input.KeyDelete,
	ebiten.KeyEnd:            input.KeyEnd,
	ebiten.KeyPageDown:       input.KeyPageDown,
	ebiten.KeyArrowRight:     input.KeyRight,
	ebiten.KeyArrowLeft:      input.KeyLeft,
	ebiten.KeyArrowDown:      input.KeyDown,
	ebiten.KeyArrowUp:        input.KeyUp,
	ebiten.KeyNumLock:        input.KeyNumLock,
	ebiten.KeyNumpadDivide:   input.KeyKPDivide,
	ebiten.KeyNumpadMultiply: input.KeyKPMultiply,
	ebiten.KeyNumpadSubtract: input.KeyKPMinus,
	ebiten.KeyNumpadAdd:      input.KeyKPPlus,
	ebiten.KeyNumpadEnter:    input.KeyKPEnter,
	ebiten.KeyNumpad1:        input.KeyKP1,
	ebiten.KeyNumpad2:        input.KeyKP2,
	ebiten.KeyNumpad3:        input.KeyKP3,
	ebiten.KeyNumpad4:        input.KeyKP4,
	ebiten.KeyNumpad5:        input.KeyKP5,
	ebiten.KeyNumpad6:        input.KeyKP6,
	ebiten.KeyNumpad7:        input.KeyKP7,
	ebiten.KeyNumpad8:        input.KeyKP8,
	ebiten.KeyNumpad9:        input.KeyKP9,
	ebiten.KeyNumpad0:        input.KeyKP0,
	ebiten.KeyNumpadDecimal:  input.KeyKPPeriod,
	ebiten.KeyIntlBackslash:  input.KeyNonUSBackslash,
	ebiten.KeyContextMenu:    input.KeyApplication,
	ebiten.KeyNumpadEqual:    input.KeyKPEquals,
	ebiten.KeyF13:            input.KeyF13,
	ebiten.KeyF14:            input.KeyF14,
	ebiten.KeyF15:            input.KeyF15,
	ebiten.KeyF16:            input.KeyF16,
	ebiten.KeyF17:            input.KeyF17,
	ebiten.KeyF18:            input.KeyF18,
	ebiten.KeyF19:            input.KeyF19,
	ebiten.KeyF20:            input.KeyF20,
	ebiten.KeyF21:            input.KeyF21,
	ebiten.KeyF22:            input.KeyF22,
	ebiten.KeyF23:            input.KeyF23,
	ebiten.KeyF24:            input.KeyF24,
	ebiten.KeyControlLeft:    input.KeyLCtrl,
	ebiten.KeyShiftLeft:      input.KeyLShift,
	ebiten.KeyAltLeft:        input.KeyLAlt,
	ebiten.KeyMetaLeft:       input.KeyLGui,
	ebiten.KeyControlRight:   input.KeyRCtrl,
	ebiten.KeyShiftRight:     input.KeyRShift,
	ebiten.KeyAltRight:       input.KeyRAlt,
	ebiten.KeyMetaRight:      input.KeyRGui,
}
