package widget

import (
	"fmt"
	"math"

	"github.com/san-kum/photosim/internal/geom"
)

const DropdownButtonWidth = 30

type Dropdown struct {
	Base
	options []string
	current int
	open    bool

	// OnChange runs after the user picks an option from the open list.
	OnChange func(index int, option string)
}

func NewDropdown(x, y, w, h float64, font Font, options []string) *Dropdown {
	d := &Dropdown{
		Base:    NewBase(x, y, w, h, font),
		options: append([]string(nil), options...),
	}
	d.bg = LightGrey
	return d
}

func (d *Dropdown) Options() []string { return append([]string(nil), d.options...) }
func (d *Dropdown) Current() int      { return d.current }
func (d *Dropdown) IsOpen() bool      { return d.open }

func (d *Dropdown) Selected() string {
	if d.current < 0 || d.current >= len(d.options) {
		return ""
	}
	return d.options[d.current]
}

// SetOptions replaces the option list, keeping the current index when it
// is still valid.
func (d *Dropdown) SetOptions(options []string) {
	d.options = append([]string(nil), options...)
	if d.current >= len(d.options) {
		d.current = 0
	}
}

func (d *Dropdown) SetCurrent(i int) error {
	if i < 0 || i >= len(d.options) {
		return fmt.Errorf("%w: %d of %d", ErrOptionIndex, i, len(d.options))
	}
	d.current = i
	return nil
}

func (d *Dropdown) arrow() geom.Rect {
	return geom.R(d.rect.Right(), d.rect.Y, DropdownButtonWidth, d.rect.H)
}

func (d *Dropdown) list() geom.Rect {
	return geom.R(d.rect.X, d.rect.Bottom(), d.rect.W, d.rect.H*float64(len(d.options)))
}

// Click handles a press and reports whether the selection changed.
func (d *Dropdown) Click(x, y float64) bool {
	if !d.open {
		if d.arrow().Contains(x, y) {
			d.open = true
		}
		return false
	}

	if d.arrow().Contains(x, y) {
		d.open = false
	}
	if d.list().Contains(x, y) {
		idx := int(math.Floor((y - d.rect.Y - d.rect.H) / d.rect.H))
		if idx >= len(d.options) {
			idx = len(d.options) - 1
		}
		d.current = idx
		d.open = false
		return true
	}
	return false
}

func (d *Dropdown) OnClick(x, y float64) {
	if d.Click(x, y) && d.OnChange != nil {
		d.OnChange(d.current, d.Selected())
	}
}

func (d *Dropdown) Draw(s Surface) {
	r, arrow := d.rect, d.arrow()
	s.FillRect(r, d.bg)
	s.FillRect(arrow, DarkGrey)
	s.FillPolygon([]geom.Point{
		{X: arrow.X + DropdownButtonWidth/2, Y: r.Bottom() - 3},
		{X: arrow.X + 3, Y: r.Y + 3},
		{X: arrow.Right() - 3, Y: r.Y + 3},
	}, Black)
	s.Text(d.Selected(), geom.Pt(r.X+2, r.Y+2), d.font, d.fg)
	s.StrokeRect(r, Black, 1)

	if !d.open {
		return
	}
	for i, opt := range d.options {
		row := geom.R(r.X, r.Y+float64(i+1)*r.H, r.W, r.H)
		s.FillRect(row, d.bg)
		s.Text(opt, geom.Pt(row.X+2, row.Y+2), d.font, Black)
	}
}
