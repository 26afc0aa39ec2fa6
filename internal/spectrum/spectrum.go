// Package spectrum maps light wavelengths to display colours.
package spectrum

import (
	"image/color"
	"math"
)

// Boundaries are the band edges in nanometres, longest first. Each band
// runs from Boundaries[i] down to Boundaries[i+1].
var Boundaries = [...]float64{850, 750, 620, 570, 495, 450, 380, 0}

var bandNames = [...]string{"infrared", "red", "yellow", "green", "cyan", "blue", "violet"}

// Band returns the index of the band containing nm and its upper and lower
// edges. ok is false outside [0, 850].
func Band(nm float64) (idx int, upper, lower float64, ok bool) {
	if nm < Boundaries[len(Boundaries)-1] || nm > Boundaries[0] || math.IsNaN(nm) {
		return -1, 0, 0, false
	}
	idx = 0
	for i := 0; i < len(Boundaries)-1; i++ {
		if nm <= Boundaries[i] {
			idx = i
		}
	}
	return idx, Boundaries[idx], Boundaries[idx+1], true
}

// Name returns the colour name of the band containing nm.
func Name(nm float64) string {
	idx, _, _, ok := Band(nm)
	if !ok {
		return "invisible"
	}
	return bandNames[idx]
}

// Color interpolates across the band containing nm. The result is opaque
// inside the table and fully transparent outside it.
func Color(nm float64) color.RGBA {
	idx, upper, lower, ok := Band(nm)
	if !ok {
		return color.RGBA{}
	}
	v := math.Round((nm - upper) / (lower - upper) * 255)

	var r, g, b float64
	switch idx {
	case 0:
		r = 255
	case 1:
		r, g = 255, v
	case 2:
		r, g = 255-v, 255
	case 3:
		g, b = 255, v
	case 4:
		g, b = 255-v, 255
	case 5:
		r, b = math.Round(v/255*180), 255
	case 6:
		r, b = 180, 255
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

// Visibility scales light opacity near the ends of the visible range: it
// ramps from 0 at 300nm to 1 at 350nm and back to 0 between 750 and 800nm.
func Visibility(nm float64) float64 {
	switch {
	case nm <= 300 || nm >= 800:
		return 0
	case nm < 350:
		return 1 - (350-nm)/50
	case nm > 750:
		return (800 - nm) / 50
	}
	return 1
}

// Alpha is the lamp beam opacity for a wavelength and intensity in
// percent. It peaks at 100 for full intensity.
func Alpha(nm, intensity float64) uint8 {
	if intensity <= 0 {
		return 0
	}
	if _, _, _, ok := Band(nm); !ok {
		return 0
	}
	return uint8(math.Round(100 * (intensity / 100) * Visibility(nm)))
}

// Light combines Color and Alpha into the beam colour.
func Light(nm, intensity float64) color.RGBA {
	c := Color(nm)
	c.A = Alpha(nm, intensity)
	return c
}
