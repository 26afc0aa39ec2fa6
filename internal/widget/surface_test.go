package widget

import (
	"image/color"

	"github.com/san-kum/photosim/internal/geom"
)

type drawCall struct {
	op   string
	rect geom.Rect
	at   geom.Point
	text string
	c    color.RGBA
}

// recorder is a Surface that remembers every call.
type recorder struct {
	calls []drawCall
}

func (r *recorder) Clear(c color.RGBA) { r.calls = append(r.calls, drawCall{op: "clear", c: c}) }

func (r *recorder) FillRect(rc geom.Rect, c color.RGBA) {
	r.calls = append(r.calls, drawCall{op: "fill", rect: rc, c: c})
}

func (r *recorder) StrokeRect(rc geom.Rect, c color.RGBA, _ float64) {
	r.calls = append(r.calls, drawCall{op: "stroke", rect: rc, c: c})
}

func (r *recorder) FillPolygon(pts []geom.Point, c color.RGBA) {
	r.calls = append(r.calls, drawCall{op: "poly", at: pts[0], c: c})
}

func (r *recorder) FillCircle(center geom.Point, _ float64, c color.RGBA) {
	r.calls = append(r.calls, drawCall{op: "circle", at: center, c: c})
}

func (r *recorder) StrokeCircle(center geom.Point, _ float64, c color.RGBA, _ float64) {
	r.calls = append(r.calls, drawCall{op: "ring", at: center, c: c})
}

func (r *recorder) Line(a, _ geom.Point, c color.RGBA, _ float64) {
	r.calls = append(r.calls, drawCall{op: "line", at: a, c: c})
}

func (r *recorder) Text(s string, at geom.Point, _ Font, c color.RGBA) {
	r.calls = append(r.calls, drawCall{op: "text", at: at, text: s, c: c})
}

func (r *recorder) DrawImage(img *Image, at geom.Point) {
	r.calls = append(r.calls, drawCall{op: "image", at: at, text: img.Name})
}

func (r *recorder) texts() []string {
	var out []string
	for _, c := range r.calls {
		if c.op == "text" {
			out = append(out, c.text)
		}
	}
	return out
}
