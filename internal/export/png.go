// Package export renders scene frames and trace series to image files.
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/san-kum/photosim/internal/geom"
	"github.com/san-kum/photosim/internal/widget"
)

// Fonts builds Go Regular faces on demand, one per pixel size.
type Fonts struct {
	ttf   *truetype.Font
	faces map[float64]font.Face
}

func NewFonts() (*Fonts, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	return &Fonts{ttf: ttf, faces: make(map[float64]font.Face)}, nil
}

func (f *Fonts) face(px float64) font.Face {
	if face, ok := f.faces[px]; ok {
		return face
	}
	face := truetype.NewFace(f.ttf, &truetype.Options{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	f.faces[px] = face
	return face
}

// Font returns a widget font measured with the Go Regular face.
func (f *Fonts) Font(px float64) widget.Font { return &Face{fonts: f, px: px} }

type Face struct {
	fonts *Fonts
	px    float64
}

func (f *Face) Measure(text string) (float64, float64) {
	w := font.MeasureString(f.fonts.face(f.px), text)
	return float64(w.Ceil()), f.px
}

func (f *Face) Size() float64 { return f.px }

// PNG is a raster widget.Surface.
type PNG struct {
	dc    *gg.Context
	fonts *Fonts
}

func NewPNG(width, height int, fonts *Fonts) *PNG {
	return &PNG{dc: gg.NewContext(width, height), fonts: fonts}
}

func (p *PNG) Image() image.Image { return p.dc.Image() }

func (p *PNG) Save(path string) error { return p.dc.SavePNG(path) }

func (p *PNG) Encode(w io.Writer) error { return p.dc.EncodePNG(w) }

func (p *PNG) Clear(c color.RGBA) {
	p.dc.SetColor(c)
	p.dc.Clear()
}

func (p *PNG) FillRect(r geom.Rect, c color.RGBA) {
	p.dc.SetColor(c)
	p.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	p.dc.Fill()
}

func (p *PNG) StrokeRect(r geom.Rect, c color.RGBA, thickness float64) {
	p.dc.SetColor(c)
	p.dc.SetLineWidth(thickness)
	p.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	p.dc.Stroke()
}

func (p *PNG) FillPolygon(pts []geom.Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	p.dc.SetColor(c)
	p.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.dc.LineTo(pt.X, pt.Y)
	}
	p.dc.ClosePath()
	p.dc.Fill()
}

func (p *PNG) FillCircle(center geom.Point, radius float64, c color.RGBA) {
	p.dc.SetColor(c)
	p.dc.DrawCircle(center.X, center.Y, radius)
	p.dc.Fill()
}

func (p *PNG) StrokeCircle(center geom.Point, radius float64, c color.RGBA, thickness float64) {
	p.dc.SetColor(c)
	p.dc.SetLineWidth(thickness)
	p.dc.DrawCircle(center.X, center.Y, radius-thickness/2)
	p.dc.Stroke()
}

func (p *PNG) Line(a, b geom.Point, c color.RGBA, thickness float64) {
	p.dc.SetColor(c)
	p.dc.SetLineWidth(thickness)
	p.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	p.dc.Stroke()
}

// Text anchors at the top left, like the widgets lay it out.
func (p *PNG) Text(s string, at geom.Point, f widget.Font, c color.RGBA) {
	px := 20.0
	if f != nil {
		px = f.Size()
	}
	p.dc.SetFontFace(p.fonts.face(px))
	p.dc.SetColor(c)
	p.dc.DrawStringAnchored(s, at.X, at.Y, 0, 1)
}

func (p *PNG) DrawImage(img *widget.Image, at geom.Point) {
	if img == nil || img.Data == nil {
		return
	}
	p.dc.DrawImage(img.Data, int(at.X), int(at.Y))
}
