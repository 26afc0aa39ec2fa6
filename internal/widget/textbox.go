package widget

import (
	"unicode/utf8"

	"github.com/san-kum/photosim/internal/geom"
)

// FocusGroup tracks which text box receives typed characters. At most one
// box in a group is focused.
type FocusGroup struct {
	focused *TextBox
}

func (g *FocusGroup) Focused() *TextBox { return g.focused }

type TextBox struct {
	Base
	group   *FocusGroup
	blocked map[string]bool
	limit   int
	text    string
	shift   bool
}

// NewTextBox creates an entry box. Characters in blocked are rejected and
// limit caps the length (0 means unlimited). The first box joining a
// group starts focused; a nil group gives the box a group of its own.
func NewTextBox(x, y, w, h float64, font Font, group *FocusGroup, blocked []string, limit int) *TextBox {
	if group == nil {
		group = &FocusGroup{}
	}
	tb := &TextBox{
		Base:    NewBase(x, y, w, h, font),
		group:   group,
		blocked: make(map[string]bool, len(blocked)),
		limit:   limit,
	}
	for _, c := range blocked {
		tb.blocked[c] = true
	}
	if group.focused == nil {
		group.focused = tb
	}
	return tb
}

func (tb *TextBox) Text() string         { return tb.text }
func (tb *TextBox) SetText(text string)  { tb.text = text }
func (tb *TextBox) Clear()               { tb.text = "" }
func (tb *TextBox) Focused() bool        { return tb.group.focused == tb }
func (tb *TextBox) ShiftHeld() bool      { return tb.shift }
func (tb *TextBox) Group() *FocusGroup   { return tb.group }
func (tb *TextBox) full() bool           { return tb.limit > 0 && utf8.RuneCountInString(tb.text) >= tb.limit }
func (tb *TextBox) allowed(s string) bool { return !tb.blocked[s] }

func (tb *TextBox) OnClick(x, y float64) {
	switch {
	case tb.hit(x, y):
		tb.group.focused = tb
	case tb.group.focused == tb:
		tb.group.focused = nil
	}
}

func (tb *TextBox) OnCharTyped(k Key) {
	if !tb.Focused() {
		return
	}
	switch k.Code {
	case KeyBackspace:
		if tb.text != "" {
			_, size := utf8.DecodeLastRuneInString(tb.text)
			tb.text = tb.text[:len(tb.text)-size]
		}
	case KeyShift:
		tb.shift = true
	case KeySpace:
		if !tb.full() && tb.allowed(" ") {
			tb.text += " "
		}
	case KeyChar:
		if tb.full() || !tb.allowed(k.Name) {
			return
		}
		ch := k.Name
		if tb.shift {
			ch = Shifted(k.Name)
		}
		if tb.allowed(ch) {
			tb.text += ch
		}
	}
}

func (tb *TextBox) OnKeyUp(k Key) {
	if k.Code == KeyShift {
		tb.shift = false
	}
}

func (tb *TextBox) Draw(s Surface) {
	s.FillRect(tb.rect, White)
	if tb.Focused() {
		s.StrokeRect(tb.rect, Black, 2)
	}
	if tb.text != "" {
		s.Text(tb.text, geom.Pt(tb.rect.X+2, tb.rect.Y+2), tb.font, Black)
	}
}
