package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/san-kum/photosim/internal/geom"
	"github.com/san-kum/photosim/internal/widget"
)

// SVG is a vector widget.Surface. Each call appends one element.
type SVG struct {
	width, height int
	sb            strings.Builder
}

func NewSVG(width, height int) *SVG {
	return &SVG{width: width, height: height}
}

func fill(c color.RGBA) string {
	s := fmt.Sprintf(`fill="#%02x%02x%02x"`, c.R, c.G, c.B)
	if c.A != 255 {
		s += fmt.Sprintf(` fill-opacity="%.3f"`, float64(c.A)/255)
	}
	return s
}

func stroke(c color.RGBA, thickness float64) string {
	s := fmt.Sprintf(`fill="none" stroke="#%02x%02x%02x" stroke-width="%.1f"`, c.R, c.G, c.B, thickness)
	if c.A != 255 {
		s += fmt.Sprintf(` stroke-opacity="%.3f"`, float64(c.A)/255)
	}
	return s
}

// Clear drops everything drawn so far.
func (s *SVG) Clear(c color.RGBA) {
	s.sb.Reset()
	fmt.Fprintf(&s.sb, "<rect width=\"100%%\" height=\"100%%\" %s/>\n", fill(c))
}

func (s *SVG) FillRect(r geom.Rect, c color.RGBA) {
	fmt.Fprintf(&s.sb, "<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" %s/>\n", r.X, r.Y, r.W, r.H, fill(c))
}

func (s *SVG) StrokeRect(r geom.Rect, c color.RGBA, thickness float64) {
	fmt.Fprintf(&s.sb, "<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" %s/>\n", r.X, r.Y, r.W, r.H, stroke(c, thickness))
}

func (s *SVG) FillPolygon(pts []geom.Point, c color.RGBA) {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", p.X, p.Y)
	}
	fmt.Fprintf(&s.sb, "<polygon points=\"%s\" %s/>\n", b.String(), fill(c))
}

func (s *SVG) FillCircle(center geom.Point, radius float64, c color.RGBA) {
	fmt.Fprintf(&s.sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" %s/>\n", center.X, center.Y, radius, fill(c))
}

func (s *SVG) StrokeCircle(center geom.Point, radius float64, c color.RGBA, thickness float64) {
	fmt.Fprintf(&s.sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" %s/>\n", center.X, center.Y, radius-thickness/2, stroke(c, thickness))
}

func (s *SVG) Line(a, b geom.Point, c color.RGBA, thickness float64) {
	fmt.Fprintf(&s.sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" %s/>\n", a.X, a.Y, b.X, b.Y, stroke(c, thickness))
}

func (s *SVG) Text(text string, at geom.Point, f widget.Font, c color.RGBA) {
	px := 20.0
	if f != nil {
		px = f.Size()
	}
	fmt.Fprintf(&s.sb, "<text x=\"%.1f\" y=\"%.1f\" font-family=\"Go, sans-serif\" font-size=\"%.0f\" dominant-baseline=\"hanging\" %s>%s</text>\n",
		at.X, at.Y, px, fill(c), html.EscapeString(text))
}

// DrawImage embeds the image as a PNG data URI.
func (s *SVG) DrawImage(img *widget.Image, at geom.Point) {
	if img == nil || img.Data == nil {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Data); err != nil {
		return
	}
	fmt.Fprintf(&s.sb, "<image x=\"%.1f\" y=\"%.1f\" width=\"%d\" height=\"%d\" href=\"data:image/png;base64,%s\"/>\n",
		at.X, at.Y, img.Width, img.Height, base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func (s *SVG) String() string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
%s</svg>`, s.width, s.height, s.width, s.height, s.sb.String())
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// SeriesToSVG draws values against their index as a polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY, maxY = min(minY, v), max(maxY, v)
	}

	// Add padding
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
