package widget

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/san-kum/photosim/internal/geom"
)

// Surface is the drawing target a widget tree renders into.
type Surface interface {
	Clear(c color.RGBA)
	FillRect(r geom.Rect, c color.RGBA)
	StrokeRect(r geom.Rect, c color.RGBA, thickness float64)
	FillPolygon(pts []geom.Point, c color.RGBA)
	FillCircle(center geom.Point, radius float64, c color.RGBA)
	StrokeCircle(center geom.Point, radius float64, c color.RGBA, thickness float64)
	Line(a, b geom.Point, c color.RGBA, thickness float64)
	Text(s string, at geom.Point, f Font, c color.RGBA)
	DrawImage(img *Image, at geom.Point)
}

// Font measures text for layout. Backends map Size to their own faces.
type Font interface {
	Measure(text string) (w, h float64)
	Size() float64
}

// FixedFont approximates a monospace face: every rune is half the pixel
// size wide. It is the default when no backend font is available.
type FixedFont struct {
	Px float64
}

func (f FixedFont) Measure(text string) (float64, float64) {
	return float64(utf8.RuneCountInString(text)) * f.Px * 0.5, f.Px
}

func (f FixedFont) Size() float64 { return f.Px }

func fontOrDefault(f Font) Font {
	if f == nil {
		return FixedFont{Px: 20}
	}
	return f
}

// Image is a decoded PNG asset.
type Image struct {
	Name   string
	Path   string
	Width  int
	Height int
	Data   image.Image
}

// LoadImage reads <dir>/<name>.png.
func LoadImage(dir, name string) (*Image, error) {
	path := filepath.Join(dir, name+".png")
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	data, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	b := data.Bounds()
	return &Image{
		Name:   name,
		Path:   path,
		Width:  b.Dx(),
		Height: b.Dy(),
		Data:   data,
	}, nil
}
