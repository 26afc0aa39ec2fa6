package physics

import "github.com/san-kum/photosim/internal/geom"

// Geometry fixes where particles appear, travel and disappear on screen.
type Geometry struct {
	Width, Height float64

	Source    geom.Rect // photon spawn area under the lamp
	Target    geom.Rect // emitting plate
	Collector geom.Rect

	ElectronX      float64
	PhotonVelocity geom.Point
	PhotonRadius   float64
	ElectronRadius float64
}

func DefaultGeometry() Geometry {
	return Geometry{
		Width:          800,
		Height:         600,
		Source:         geom.R(516, 204, 180, 100),
		Target:         geom.R(10, 400, 50, 150),
		Collector:      geom.R(740, 400, 50, 150),
		ElectronX:      60,
		PhotonVelocity: geom.Pt(-10, 4),
		PhotonRadius:   4,
		ElectronRadius: 5,
	}
}
