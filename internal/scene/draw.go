package scene

import (
	"github.com/san-kum/photosim/internal/geom"
	"github.com/san-kum/photosim/internal/widget"
)

// Draw repaints the whole frame back to front.
func (s *Scene) Draw(surf widget.Surface) {
	surf.Clear(widget.White)

	if s.showPhotons {
		for _, ph := range s.session.Photons() {
			surf.FillCircle(ph.Pos, ph.Radius, ph.Color)
		}
	}
	for _, e := range s.session.Electrons() {
		surf.FillCircle(e.Pos, e.Radius-1, electronBlue)
		surf.StrokeCircle(e.Pos, e.Radius, widget.Black, 2)
	}

	surf.FillRect(panelRect, panelGrey)
	surf.Line(geom.Pt(0, panelRect.Bottom()), geom.Pt(panelRect.Right(), panelRect.Bottom()), widget.Black, 2)
	surf.Line(geom.Pt(panelRect.Right(), panelRect.Bottom()), geom.Pt(panelRect.Right(), 0), widget.Black, 2)

	g := s.session.Geometry()
	surf.FillRect(g.Target, s.session.Current().Color)
	surf.StrokeRect(g.Target, widget.Black, 2)
	surf.FillRect(g.Collector, collectorGrey)
	surf.StrokeRect(g.Collector, widget.Black, 2)

	s.root.DrawWidgets(surf)

	if s.light.A > 0 {
		surf.FillPolygon(lightPolygon, s.light)
	}
	s.drawLamp(surf)

	s.root.DrawMenus(surf)
}

func (s *Scene) drawLamp(surf widget.Surface) {
	if s.lamp != nil {
		surf.DrawImage(s.lamp, lampAt)
		return
	}
	body := geom.R(lampAt.X, lampAt.Y, 120, 50)
	surf.FillRect(body, lampBody)
	surf.StrokeRect(body, widget.Black, 2)
	surf.FillCircle(geom.Pt(lampAt.X+20, lampAt.Y+55), 8, s.light)
}
