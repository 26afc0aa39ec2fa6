package widget

import (
	"image/color"

	"github.com/san-kum/photosim/internal/geom"
)

type caption struct {
	text  string
	at    geom.Point
	color color.RGBA
}

// Container offsets its children by its own position when they are added
// and forwards every event to them in insertion order.
type Container struct {
	Base
	children []Widget
	captions []caption
	visible  bool
	inset    geom.Point
}

func NewContainer(x, y, w, h float64, font Font) *Container {
	return &Container{Base: NewBase(x, y, w, h, font), visible: true}
}

// Add translates w into the container once. Later moves of the container
// carry w along through Translate.
func (c *Container) Add(ws ...Widget) {
	for _, w := range ws {
		w.Translate(c.rect.X+c.inset.X, c.rect.Y+c.inset.Y)
		w.OnAddedToContainer()
		c.children = append(c.children, w)
	}
}

// AddText places static text at coordinates relative to the container.
func (c *Container) AddText(text string, x, y float64) {
	c.captions = append(c.captions, caption{
		text:  text,
		at:    geom.Pt(x+c.rect.X+c.inset.X, y+c.rect.Y+c.inset.Y),
		color: c.fg,
	})
}

func (c *Container) Children() []Widget { return c.children }

func (c *Container) Visible() bool { return c.visible }
func (c *Container) Show()         { c.visible = true }
func (c *Container) Hide()         { c.visible = false }

func (c *Container) Translate(dx, dy float64) {
	c.Base.Translate(dx, dy)
	for _, w := range c.children {
		w.Translate(dx, dy)
	}
	for i := range c.captions {
		c.captions[i].at.X += dx
		c.captions[i].at.Y += dy
	}
}

func (c *Container) Draw(s Surface) {
	if !c.visible {
		return
	}
	c.drawContents(s)
}

func (c *Container) drawContents(s Surface) {
	for _, w := range c.children {
		w.Draw(s)
	}
	for _, cp := range c.captions {
		s.Text(cp.text, cp.at, c.font, cp.color)
	}
}

func (c *Container) OnClick(x, y float64) {
	for _, w := range c.children {
		w.OnClick(x, y)
	}
}

func (c *Container) OnUnclick() {
	for _, w := range c.children {
		w.OnUnclick()
	}
}

func (c *Container) OnCharTyped(k Key) {
	for _, w := range c.children {
		w.OnCharTyped(k)
	}
}

func (c *Container) OnKeyUp(k Key) {
	for _, w := range c.children {
		w.OnKeyUp(k)
	}
}

func (c *Container) Update(x, y float64) {
	for _, w := range c.children {
		w.Update(x, y)
	}
}

const MenuBarHeight = 25

// Menu is a hidden-by-default container drawn as a window with a title
// bar. Children are positioned relative to the area below the bar.
type Menu struct {
	Container
	title string
	bar   float64
}

// NewMenu takes the size of the body; the title bar is added above it.
func NewMenu(x, y, w, h float64, font Font, title string) *Menu {
	m := &Menu{
		Container: Container{Base: NewBase(x, y, w, h+MenuBarHeight, font)},
		title:     title,
		bar:       MenuBarHeight,
	}
	m.inset = geom.Pt(0, m.bar)
	return m
}

func (m *Menu) Title() string { return m.title }

func (m *Menu) Body() geom.Rect {
	return geom.R(m.rect.X, m.rect.Y+m.bar, m.rect.W, m.rect.H-m.bar)
}

func (m *Menu) Draw(s Surface) {
	if !m.visible {
		return
	}
	r, body := m.rect, m.Body()
	s.FillRect(geom.R(r.X, r.Y, r.W, m.bar), menuBar)
	s.Text(m.title, geom.Pt(r.X+2, r.Y+2), m.font, Black)
	s.FillRect(body, menuBody)
	s.StrokeRect(r, Black, 1)
	s.Line(geom.Pt(r.X, body.Y), geom.Pt(r.Right(), body.Y), Black, 1)
	m.drawContents(s)
}

// Root dispatches a frame's input to the top-level widgets and menus.
type Root struct {
	widgets []Widget
	menus   []*Menu

	// Modal stops clicks reaching top-level widgets while a menu is open.
	Modal bool
}

func NewRoot() *Root { return &Root{} }

func (r *Root) Add(ws ...Widget)    { r.widgets = append(r.widgets, ws...) }
func (r *Root) AddMenu(ms ...*Menu) { r.menus = append(r.menus, ms...) }
func (r *Root) Widgets() []Widget   { return r.widgets }
func (r *Root) Menus() []*Menu      { return r.menus }

// ActiveMenu returns the first visible menu, or nil.
func (r *Root) ActiveMenu() *Menu {
	for _, m := range r.menus {
		if m.Visible() {
			return m
		}
	}
	return nil
}

func (r *Root) Update(x, y float64) {
	for _, w := range r.widgets {
		w.Update(x, y)
	}
	for _, m := range r.menus {
		m.Update(x, y)
	}
}

func (r *Root) Click(x, y float64) {
	active := r.ActiveMenu()
	if !(r.Modal && active != nil) {
		for _, w := range r.widgets {
			w.OnClick(x, y)
		}
	}
	if active != nil {
		active.OnClick(x, y)
	}
}

func (r *Root) Unclick() {
	for _, w := range r.widgets {
		w.OnUnclick()
	}
	for _, m := range r.menus {
		m.OnUnclick()
	}
}

// Dispatch delivers the events in order and reports whether a quit was
// requested.
func (r *Root) Dispatch(in Input) (quit bool) {
	for _, ev := range in.Events {
		switch ev.Kind {
		case MouseDown:
			r.Click(ev.X, ev.Y)
		case MouseUp:
			r.Unclick()
		case KeyDown:
			if m := r.ActiveMenu(); m != nil {
				m.OnCharTyped(ev.Key)
			}
		case KeyUp:
			if m := r.ActiveMenu(); m != nil {
				m.OnKeyUp(ev.Key)
			}
		case Quit:
			quit = true
		}
	}
	return quit
}

func (r *Root) DrawWidgets(s Surface) {
	for _, w := range r.widgets {
		w.Draw(s)
	}
}

func (r *Root) DrawMenus(s Surface) {
	for _, m := range r.menus {
		m.Draw(s)
	}
}
