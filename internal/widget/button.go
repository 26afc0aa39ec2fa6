package widget

import (
	"github.com/san-kum/photosim/internal/geom"
)

// DebounceTicks is how many updates a button ignores further clicks for.
const DebounceTicks = 20

type clicker struct {
	clicked  bool
	cooldown int
	greyed   bool
	hover    bool
}

func (c *clicker) press(hit bool) {
	if hit && c.cooldown == 0 && !c.greyed {
		c.clicked = true
		c.cooldown = DebounceTicks
	}
}

func (c *clicker) tick(hit bool) {
	c.hover = hit && !c.greyed
	if c.cooldown != 0 {
		c.cooldown--
		c.clicked = false
	}
}

// Clicked is true from the click until the next update. Releasing the
// mouse does not clear it, so a press and release delivered in the same
// frame still registers.
func (c *clicker) Clicked() bool { return c.clicked }

func (c *clicker) Greyed() bool { return c.greyed }

func (c *clicker) SetGreyed(g bool) {
	c.greyed = g
	if g {
		c.clicked = false
		c.hover = false
	}
}

func (c *clicker) Cooldown() int { return c.cooldown }

type Button struct {
	Base
	clicker
	text string
}

// NewButton sizes the button to its label plus a 5px margin.
func NewButton(x, y float64, font Font, text string) *Button {
	font = fontOrDefault(font)
	w, h := font.Measure(text)
	b := &Button{
		Base: NewBase(x, y, w+5, h+5, font),
		text: text,
	}
	b.bg = LightGrey
	return b
}

func (b *Button) Text() string { return b.text }

func (b *Button) OnClick(x, y float64) { b.press(b.hit(x, y)) }
func (b *Button) Update(x, y float64)  { b.tick(b.hit(x, y)) }

func (b *Button) Draw(s Surface) {
	bg, fg, border := b.bg, b.fg, 1.0
	switch {
	case b.greyed:
		bg, fg = greyedGrey, DarkGrey
	case b.hover:
		bg, border = hoverGrey, 2
	}
	s.FillRect(b.rect, bg)
	s.Text(b.text, geom.Pt(b.rect.X+3, b.rect.Y+3), b.font, fg)
	s.StrokeRect(b.rect, Black, border)
}

// ImageButton is a Button showing an image instead of a label.
type ImageButton struct {
	Base
	clicker
	img *Image
}

// NewImageButton sizes the button to the image plus 5px padding per side.
func NewImageButton(x, y float64, font Font, img *Image) *ImageButton {
	b := &ImageButton{
		Base: NewBase(x, y, float64(img.Width)+10, float64(img.Height)+10, font),
		img:  img,
	}
	b.bg = LightGrey
	return b
}

// LoadImageButton loads <dir>/<name>.png and wraps it in a button.
func LoadImageButton(x, y float64, font Font, dir, name string) (*ImageButton, error) {
	img, err := LoadImage(dir, name)
	if err != nil {
		return nil, err
	}
	return NewImageButton(x, y, font, img), nil
}

func (b *ImageButton) OnClick(x, y float64) { b.press(b.hit(x, y)) }
func (b *ImageButton) Update(x, y float64)  { b.tick(b.hit(x, y)) }

func (b *ImageButton) Draw(s Surface) {
	bg, border := b.bg, 1.0
	switch {
	case b.greyed:
		bg = greyedGrey
	case b.hover:
		bg, border = hoverGrey, 2
	}
	s.FillRect(b.rect, bg)
	s.DrawImage(b.img, geom.Pt(b.rect.X+5, b.rect.Y+5))
	s.StrokeRect(b.rect, Black, border)
}
