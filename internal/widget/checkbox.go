package widget

import (
	"github.com/san-kum/photosim/internal/geom"
)

const CheckboxSize = 22

type Checkbox struct {
	Base
	on      bool
	onImg   *Image
	offImg  *Image
	changed bool
}

func NewCheckbox(x, y float64, font Font) *Checkbox {
	return &Checkbox{Base: NewBase(x, y, CheckboxSize, CheckboxSize, font)}
}

// LoadCheckbox uses <dir>/<on>.png and <dir>/<off>.png for the two states.
func LoadCheckbox(x, y float64, font Font, dir, on, off string) (*Checkbox, error) {
	onImg, err := LoadImage(dir, on)
	if err != nil {
		return nil, err
	}
	offImg, err := LoadImage(dir, off)
	if err != nil {
		return nil, err
	}
	cb := NewCheckbox(x, y, font)
	cb.onImg, cb.offImg = onImg, offImg
	return cb, nil
}

func (cb *Checkbox) On() bool      { return cb.on }
func (cb *Checkbox) SetOn(on bool) { cb.on = on }

// Changed reports whether the box was toggled since the last Update.
func (cb *Checkbox) Changed() bool { return cb.changed }

func (cb *Checkbox) Update(float64, float64) { cb.changed = false }

func (cb *Checkbox) OnClick(x, y float64) {
	if cb.hit(x, y) {
		cb.on = !cb.on
		cb.changed = true
	}
}

func (cb *Checkbox) Draw(s Surface) {
	r := cb.rect
	s.FillRect(r, cb.bg)
	s.StrokeRect(r, Black, 2)

	img := cb.offImg
	if cb.on {
		img = cb.onImg
	}
	if img != nil {
		s.DrawImage(img, geom.Pt(r.X+2, r.Y+2))
		return
	}
	if cb.on {
		s.Line(geom.Pt(r.X+4, r.Y+r.H/2), geom.Pt(r.X+r.W/2-1, r.Bottom()-4), Black, 2)
		s.Line(geom.Pt(r.X+r.W/2-1, r.Bottom()-4), geom.Pt(r.Right()-4, r.Y+4), Black, 2)
	}
}
