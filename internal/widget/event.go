package widget

import (
	"strings"

	"github.com/san-kum/photosim/internal/geom"
)

type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyChar
	KeySpace
	KeyBackspace
	KeyShift
	KeyEnter
	KeyEscape
	KeyTab
	KeyOther
)

// Key is a keyboard key. For KeyChar, Name holds the unshifted character
// printed on the key ("a", "1", "-").
type Key struct {
	Code KeyCode
	Name string
}

func Char(r rune) Key { return Key{Code: KeyChar, Name: string(r)} }

var shiftTable = map[string]string{
	"1": "!", "2": "\"", "3": "£", "4": "$", "5": "%", "6": "^", "7": "&", "8": "*", "9": "(", "0": ")",
	"-": "_", "=": "+", "#": "~", "[": "{", "]": "}", ";": ":", "'": "@", ",": "<", ".": ">", "/": "?",
	"\\": "|",
}

var unshiftTable = func() map[string]string {
	m := make(map[string]string, len(shiftTable))
	for k, v := range shiftTable {
		m[v] = k
	}
	return m
}()

// Unshifted returns the key that produces ch with shift held, for front
// ends that only see typed characters.
func Unshifted(ch string) (string, bool) {
	if k, ok := unshiftTable[ch]; ok {
		return k, true
	}
	if lower := strings.ToLower(ch); lower != ch {
		return lower, true
	}
	return ch, false
}

// Shifted returns the character produced by name with shift held.
func Shifted(name string) string {
	if s, ok := shiftTable[name]; ok {
		return s
	}
	return strings.ToUpper(name)
}

type EventKind int

const (
	MouseDown EventKind = iota + 1
	MouseUp
	KeyDown
	KeyUp
	Quit
)

type Event struct {
	Kind EventKind
	X, Y float64
	Key  Key
}

// Input is everything a front end collected for one frame.
type Input struct {
	Pointer geom.Point
	Events  []Event
}
