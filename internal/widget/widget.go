package widget

import (
	"image/color"

	"github.com/san-kum/photosim/internal/geom"
)

type Widget interface {
	Draw(s Surface)
	OnClick(x, y float64)
	OnUnclick()
	OnCharTyped(k Key)
	OnKeyUp(k Key)
	Update(x, y float64)

	// OnAddedToContainer runs once after the widget has been translated
	// into its container, so cached geometry can be rebuilt.
	OnAddedToContainer()

	Bounds() geom.Rect
	Translate(dx, dy float64)
}

// Base carries the state shared by all widgets and no-op handlers.
type Base struct {
	rect geom.Rect
	font Font
	bg   color.RGBA
	fg   color.RGBA
}

func NewBase(x, y, w, h float64, font Font) Base {
	return Base{
		rect: geom.R(x, y, w, h),
		font: fontOrDefault(font),
		bg:   Grey,
		fg:   Black,
	}
}

func (b *Base) Bounds() geom.Rect { return b.rect }

func (b *Base) Translate(dx, dy float64) { b.rect = b.rect.Moved(dx, dy) }

func (b *Base) Font() Font { return b.font }

func (b *Base) Background() color.RGBA { return b.bg }
func (b *Base) TextColor() color.RGBA  { return b.fg }

// SetBackground keeps the previous colour when any channel is invalid.
func (b *Base) SetBackground(r, g, bl int) error {
	c, err := RGB(r, g, bl)
	if err != nil {
		return err
	}
	b.bg = c
	return nil
}

func (b *Base) SetTextColor(r, g, bl int) error {
	c, err := RGB(r, g, bl)
	if err != nil {
		return err
	}
	b.fg = c
	return nil
}

func (b *Base) Draw(Surface)          {}
func (b *Base) OnClick(x, y float64)  {}
func (b *Base) OnUnclick()            {}
func (b *Base) OnCharTyped(Key)       {}
func (b *Base) OnKeyUp(Key)           {}
func (b *Base) Update(x, y float64)   {}
func (b *Base) OnAddedToContainer()   {}
func (b *Base) hit(x, y float64) bool { return b.rect.Contains(x, y) }
