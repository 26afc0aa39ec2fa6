package viz

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/photosim/internal/geom"
	"github.com/san-kum/photosim/internal/widget"
)

// Surface is a widget.Surface over a braille canvas. Near-white paint
// erases dots, since the terminal background stands in for the paper.
type Surface struct {
	canvas         *Canvas
	width, height  float64
	scaleX, scaleY float64
	colors         [][]color.RGBA
	text           [][]rune
	styles         map[color.RGBA]lipgloss.Style
}

// NewSurface maps a width x height pixel scene onto cols x rows cells.
func NewSurface(cols, rows int, width, height float64) *Surface {
	s := &Surface{width: width, height: height, styles: make(map[color.RGBA]lipgloss.Style)}
	s.Resize(cols, rows)
	return s
}

func (s *Surface) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	s.canvas = NewCanvas(cols, rows)
	w, h := s.canvas.Dots()
	s.scaleX, s.scaleY = float64(w)/s.width, float64(h)/s.height
	s.colors = make([][]color.RGBA, rows)
	s.text = make([][]rune, rows)
	for i := range s.colors {
		s.colors[i] = make([]color.RGBA, cols)
		s.text[i] = make([]rune, cols)
	}
}

func (s *Surface) Canvas() *Canvas { return s.canvas }

// Cell converts a terminal cell back to scene pixels, at the cell centre.
func (s *Surface) Cell(col, row int) geom.Point {
	return geom.Pt((float64(col)*2+1)/s.scaleX, (float64(row)*4+2)/s.scaleY)
}

func (s *Surface) dot(p geom.Point) (int, int) {
	return int(math.Floor(p.X * s.scaleX)), int(math.Floor(p.Y * s.scaleY))
}

func luminance(c color.RGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

func paper(c color.RGBA) bool { return luminance(c) > 0.9 }

func (s *Surface) paint(x, y int, c color.RGBA) {
	if c.A == 0 {
		return
	}
	// Translucent fills are stippled.
	if c.A < 128 && (x+y)%2 != 0 {
		return
	}
	if paper(c) {
		s.canvas.Unset(x, y)
		return
	}
	row, col, ok := s.canvas.cell(x, y)
	if !ok {
		return
	}
	s.canvas.Set(x, y)
	s.colors[row][col] = color.RGBA{c.R, c.G, c.B, 255}
}

func (s *Surface) Clear(color.RGBA) {
	s.canvas.Clear()
	for i := range s.colors {
		clear(s.colors[i])
		clear(s.text[i])
	}
}

func (s *Surface) FillRect(r geom.Rect, c color.RGBA) {
	x0, y0 := s.dot(geom.Pt(r.X, r.Y))
	x1, y1 := s.dot(geom.Pt(r.Right(), r.Bottom()))
	for y := y0; y < max(y1, y0+1); y++ {
		for x := x0; x < max(x1, x0+1); x++ {
			s.paint(x, y, c)
		}
	}
}

func (s *Surface) StrokeRect(r geom.Rect, c color.RGBA, thickness float64) {
	corners := r.Corners()
	for i := range corners {
		s.Line(corners[i], corners[(i+1)%len(corners)], c, thickness)
	}
}

func (s *Surface) FillPolygon(pts []geom.Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	x0, y0 := s.dot(lo)
	x1, y1 := s.dot(hi)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if inside(pts, geom.Pt((float64(x)+0.5)/s.scaleX, (float64(y)+0.5)/s.scaleY)) {
				s.paint(x, y, c)
			}
		}
	}
}

// inside is the even-odd rule.
func inside(pts []geom.Point, p geom.Point) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func (s *Surface) circle(center geom.Point, radius float64, hit func(d float64) bool, c color.RGBA) {
	x0, y0 := s.dot(geom.Pt(center.X-radius, center.Y-radius))
	x1, y1 := s.dot(geom.Pt(center.X+radius, center.Y+radius))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px := (float64(x)+0.5)/s.scaleX - center.X
			py := (float64(y)+0.5)/s.scaleY - center.Y
			if hit(math.Hypot(px, py)) {
				s.paint(x, y, c)
			}
		}
	}
}

// FillCircle always marks the centre dot so small particles stay visible
// after scaling.
func (s *Surface) FillCircle(center geom.Point, radius float64, c color.RGBA) {
	s.circle(center, radius, func(d float64) bool { return d <= radius }, c)
	x, y := s.dot(center)
	s.paint(x, y, c)
}

func (s *Surface) StrokeCircle(center geom.Point, radius float64, c color.RGBA, thickness float64) {
	band := math.Max(thickness, 1/s.scaleX)
	s.circle(center, radius, func(d float64) bool { return d <= radius && d >= radius-band }, c)
}

func (s *Surface) Line(a, b geom.Point, c color.RGBA, _ float64) {
	x0, y0 := s.dot(a)
	x1, y1 := s.dot(b)
	s.canvas.line(x0, y0, x1, y1, func(x, y int) { s.paint(x, y, c) })
}

// Text writes runes into cells over the dots, clipped at the right edge.
func (s *Surface) Text(text string, at geom.Point, _ widget.Font, c color.RGBA) {
	x, y := s.dot(at)
	row, col := y/4, x/2
	if row < 0 || row >= s.canvas.Height {
		return
	}
	for _, r := range text {
		if col >= s.canvas.Width {
			break
		}
		if col >= 0 {
			s.text[row][col] = r
			s.colors[row][col] = c
		}
		col++
	}
}

// DrawImage samples the image at each dot it covers.
func (s *Surface) DrawImage(img *widget.Image, at geom.Point) {
	if img == nil || img.Data == nil {
		return
	}
	b := img.Data.Bounds()
	x0, y0 := s.dot(at)
	x1, y1 := s.dot(geom.Pt(at.X+float64(img.Width), at.Y+float64(img.Height)))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			ix := b.Min.X + int((float64(x)+0.5)/s.scaleX-at.X)
			iy := b.Min.Y + int((float64(y)+0.5)/s.scaleY-at.Y)
			c := color.RGBAModel.Convert(img.Data.At(ix, iy)).(color.RGBA)
			if c.A >= 128 {
				s.paint(x, y, c)
			}
		}
	}
}

func (s *Surface) style(c color.RGBA) lipgloss.Style {
	if st, ok := s.styles[c]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	// Dark ink uses the terminal's own foreground.
	if luminance(c) >= 0.15 {
		st = st.Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
	}
	s.styles[c] = st
	return st
}

// Render returns the frame as styled lines, grouping runs of one colour.
func (s *Surface) Render() string {
	var b strings.Builder
	var run strings.Builder
	for row := range s.canvas.Grid {
		var cur color.RGBA
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(s.style(cur).Render(run.String()))
				run.Reset()
			}
		}
		for col, r := range s.canvas.Grid[row] {
			c := s.colors[row][col]
			if t := s.text[row][col]; t != 0 {
				r = t
			} else if r == blank {
				r, c = ' ', color.RGBA{}
			}
			if c != cur {
				flush()
				cur = c
			}
			run.WriteRune(r)
		}
		flush()
		if row < len(s.canvas.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Plain returns the frame without styling.
func (s *Surface) Plain() string {
	var b strings.Builder
	for row := range s.canvas.Grid {
		for col, r := range s.canvas.Grid[row] {
			if t := s.text[row][col]; t != 0 {
				r = t
			} else if r == blank {
				r = ' '
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
