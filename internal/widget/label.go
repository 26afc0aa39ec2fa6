package widget

import (
	"image/color"

	"github.com/san-kum/photosim/internal/geom"
)

type Label struct {
	Base
	text  string
	color color.RGBA
}

// NewLabel sizes the label to its measured text.
func NewLabel(x, y float64, font Font, text string) *Label {
	f := fontOrDefault(font)
	w, h := f.Measure(text)
	return &Label{Base: NewBase(x, y, w, h, f), text: text, color: Black}
}

func (l *Label) Text() string { return l.text }

func (l *Label) SetText(text string) {
	l.text = text
	l.rect.W, l.rect.H = l.font.Measure(text)
}

func (l *Label) SetColor(c color.RGBA) { l.color = c }

func (l *Label) Draw(s Surface) {
	if l.text != "" {
		s.Text(l.text, geom.Pt(l.rect.X, l.rect.Y), l.font, l.color)
	}
}
