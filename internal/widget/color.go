package widget

import (
	"fmt"
	"image/color"
)

var (
	Black     = color.RGBA{0, 0, 0, 255}
	White     = color.RGBA{255, 255, 255, 255}
	Grey      = color.RGBA{100, 100, 100, 255}
	DarkGrey  = color.RGBA{50, 50, 50, 255}
	LightGrey = color.RGBA{130, 130, 130, 255}

	hoverGrey  = color.RGBA{100, 100, 100, 255}
	greyedGrey = color.RGBA{150, 150, 150, 255}
	menuBar    = color.RGBA{80, 80, 80, 255}
	menuBody   = color.RGBA{120, 120, 120, 255}
)

// RGB builds an opaque colour, rejecting channels outside 0-255.
func RGB(r, g, b int) (color.RGBA, error) {
	return RGBA(r, g, b, 255)
}

func RGBA(r, g, b, a int) (color.RGBA, error) {
	for _, ch := range [...]int{r, g, b, a} {
		if ch < 0 || ch > 255 {
			return color.RGBA{}, fmt.Errorf("%w: (%d, %d, %d, %d)", ErrColorChannel, r, g, b, a)
		}
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}, nil
}
