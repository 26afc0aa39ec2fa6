package widget

import (
	"image/color"
)

// ColorSwatch is a bordered patch of solid colour.
type ColorSwatch struct {
	Base
	rgb color.RGBA
}

func NewColorSwatch(x, y, w, h float64, font Font, r, g, b int) (*ColorSwatch, error) {
	c, err := RGB(r, g, b)
	if err != nil {
		return nil, err
	}
	return &ColorSwatch{Base: NewBase(x, y, w, h, font), rgb: c}, nil
}

func (cs *ColorSwatch) Color() color.RGBA { return cs.rgb }

// SetRGB leaves the current colour in place on error.
func (cs *ColorSwatch) SetRGB(r, g, b int) error {
	c, err := RGB(r, g, b)
	if err != nil {
		return err
	}
	cs.rgb = c
	return nil
}

func (cs *ColorSwatch) Draw(s Surface) {
	s.FillRect(cs.rect, cs.rgb)
	s.StrokeRect(cs.rect, Black, 1)
}
