package widget

import (
	"math"
	"strconv"

	"github.com/san-kum/photosim/internal/geom"
)

// Slider maps the horizontal position of its pointer linearly onto
// [low, high]. The pointer is stored in screen pixels and the value is
// derived from it on every read.
type Slider struct {
	Base
	low, high float64
	start     float64
	decimals  int
	pointer   float64
	captured  bool
}

// NewSlider places the pointer at start (0 = left edge, 1 = right edge).
// decimals controls the rendered precision of the value.
func NewSlider(x, y, w, h float64, font Font, low, high, start float64, decimals int) *Slider {
	s := &Slider{
		Base:     NewBase(x, y, w, h, font),
		low:      low,
		high:     high,
		start:    clamp(start, 0, 1),
		decimals: decimals,
	}
	s.pointer = s.rect.X + s.rect.W*s.start
	return s
}

func (s *Slider) Range() (low, high float64) { return s.low, s.high }
func (s *Slider) Pointer() float64            { return s.pointer }
func (s *Slider) Captured() bool              { return s.captured }

func (s *Slider) Value() float64 {
	frac := (s.pointer - s.rect.X) / s.rect.W
	return s.low + frac*(s.high-s.low)
}

// SetValue moves the pointer to v, clamped to the slider range.
func (s *Slider) SetValue(v float64) {
	if s.high == s.low {
		s.pointer = s.rect.X
		return
	}
	frac := clamp((v-s.low)/(s.high-s.low), 0, 1)
	s.pointer = s.rect.X + frac*s.rect.W
}

func (s *Slider) lineY() float64 { return s.rect.Y + s.rect.H*0.8 }

func (s *Slider) handle() geom.Rect {
	top := s.rect.Y + 2
	return geom.R(s.pointer-10, top, 20, (s.lineY()-2)-top)
}

func (s *Slider) OnAddedToContainer() {
	s.pointer = s.rect.X + s.rect.W*s.start
}

func (s *Slider) Translate(dx, dy float64) {
	s.Base.Translate(dx, dy)
	s.pointer += dx
}

func (s *Slider) OnClick(x, y float64) {
	if s.handle().Contains(x, y) || s.hit(x, y) {
		s.captured = true
	}
}

func (s *Slider) OnUnclick() { s.captured = false }

func (s *Slider) Update(x, y float64) {
	if s.captured {
		s.pointer = clamp(x, s.rect.X, s.rect.Right())
	}
}

func (s *Slider) Label() string {
	v := s.Value()
	if s.decimals == 0 {
		return strconv.Itoa(int(math.Round(v)))
	}
	return strconv.FormatFloat(v, 'f', s.decimals, 64)
}

func (s *Slider) Draw(surf Surface) {
	ly := s.lineY()
	surf.FillRect(geom.R(s.rect.X, ly, s.rect.W, s.rect.Bottom()-ly), Black)
	surf.FillPolygon([]geom.Point{
		{X: s.pointer, Y: ly - 2},
		{X: s.pointer - 10, Y: s.rect.Y + 2},
		{X: s.pointer + 10, Y: s.rect.Y + 2},
	}, Black)
	surf.Text(s.Label(), geom.Pt(s.pointer+12, s.rect.Y), s.font, Black)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
