package export

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/photosim/internal/geom"
	"github.com/san-kum/photosim/internal/widget"
)

var red = color.RGBA{255, 0, 0, 255}

func TestFontsMeasure(t *testing.T) {
	fonts, err := NewFonts()
	if err != nil {
		t.Fatal(err)
	}
	f := fonts.Font(20)
	short, h := f.Measure("ab")
	long, _ := f.Measure("abcdef")
	if short <= 0 || long <= short {
		t.Errorf("widths %f %f", short, long)
	}
	if h != 20 || f.Size() != 20 {
		t.Errorf("height %f size %f", h, f.Size())
	}
}

func TestPNGDraws(t *testing.T) {
	fonts, err := NewFonts()
	if err != nil {
		t.Fatal(err)
	}
	p := NewPNG(100, 100, fonts)
	p.Clear(widget.White)
	p.FillRect(geom.R(10, 10, 20, 20), red)
	p.Text("hi", geom.Pt(50, 50), fonts.Font(12), widget.Black)

	img := p.Image()
	if got := color.RGBAModel.Convert(img.At(20, 20)).(color.RGBA); got != red {
		t.Errorf("inside rect = %v", got)
	}
	if got := color.RGBAModel.Convert(img.At(80, 10)).(color.RGBA); got != widget.White {
		t.Errorf("background = %v", got)
	}

	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("encoded PNG unreadable: %v", err)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := p.Save(path); err != nil {
		t.Fatal(err)
	}
}

func TestSVGElements(t *testing.T) {
	s := NewSVG(800, 600)
	s.FillRect(geom.R(0, 0, 10, 10), red)
	s.Clear(widget.White)
	s.FillRect(geom.R(1, 2, 3, 4), red)
	s.FillPolygon([]geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 10)}, color.RGBA{0, 0, 255, 100})
	s.FillCircle(geom.Pt(5, 5), 3, red)
	s.Text("a < b", geom.Pt(1, 1), nil, widget.Black)

	out := s.String()
	if strings.Count(out, "<rect") != 2 {
		t.Errorf("clear should drop earlier elements:\n%s", out)
	}
	for _, want := range []string{
		`width="800" height="600"`,
		`<rect x="1.0" y="2.0" width="3.0" height="4.0" fill="#ff0000"/>`,
		`points="0.0,0.0 10.0,0.0 0.0,10.0"`,
		`fill-opacity="0.392"`,
		`<circle cx="5.0"`,
		`a &lt; b`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("one point should give no plot")
	}
	out := SeriesToSVG([]float64{0, 1, 2}, 100, 50, "#00ff00")
	if !strings.Contains(out, `stroke="#00ff00"`) || strings.Count(out, " L") != 2 {
		t.Errorf("unexpected svg:\n%s", out)
	}
}
