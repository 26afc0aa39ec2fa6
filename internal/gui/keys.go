package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/photosim/internal/widget"
)

// mapKey converts a raylib key code to the unshifted key it is printed
// with. raylib letter codes are upper case ASCII.
func mapKey(k int32) (widget.Key, bool) {
	switch {
	case k >= rl.KeyA && k <= rl.KeyZ:
		return widget.Char(rune(k - rl.KeyA + 'a')), true
	case k >= rl.KeyZero && k <= rl.KeyNine:
		return widget.Char(rune(k)), true
	}

	switch k {
	case rl.KeySpace:
		return widget.Key{Code: widget.KeySpace, Name: " "}, true
	case rl.KeyBackspace:
		return widget.Key{Code: widget.KeyBackspace}, true
	case rl.KeyLeftShift, rl.KeyRightShift:
		return widget.Key{Code: widget.KeyShift}, true
	case rl.KeyEnter, rl.KeyKpEnter:
		return widget.Key{Code: widget.KeyEnter}, true
	case rl.KeyEscape:
		return widget.Key{Code: widget.KeyEscape}, true
	case rl.KeyTab:
		return widget.Key{Code: widget.KeyTab}, true
	case rl.KeyApostrophe, rl.KeyComma, rl.KeyMinus, rl.KeyPeriod, rl.KeySlash,
		rl.KeySemicolon, rl.KeyEqual, rl.KeyLeftBracket, rl.KeyBackSlash,
		rl.KeyRightBracket, rl.KeyGrave:
		return widget.Char(rune(k)), true
	case rl.KeyKpDecimal:
		return widget.Char('.'), true
	}
	if k >= rl.KeyKp0 && k <= rl.KeyKp9 {
		return widget.Char(rune(k - rl.KeyKp0 + '0')), true
	}
	return widget.Key{}, false
}
