package physics

import (
	"image/color"
	"math"

	"github.com/san-kum/photosim/internal/geom"
)

type Photon struct {
	Pos    geom.Point
	Vel    geom.Point
	Radius float64
	Energy float64 // kinetic energy left after the work function, J
	Color  color.RGBA
}

func (p *Photon) Move() {
	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y
}

// Hitbox is the square anchored at the photon position.
func (p *Photon) Hitbox() geom.Rect {
	return geom.R(p.Pos.X, p.Pos.Y, 2*p.Radius, 2*p.Radius)
}

// Liberate reports whether the photon frees an electron against stop
// volts. The retarding energy is taken from the photon only when it does.
func (p *Photon) Liberate(stop float64) bool {
	retard := stop * ElementaryCharge
	if p.Energy-retard > 0 {
		p.Energy -= retard
		return true
	}
	return false
}

// Offscreen reports whether the photon has passed the left edge or the
// bottom of a screen height pixels tall.
func (p *Photon) Offscreen(height float64) bool {
	return p.Pos.X < -2*p.Radius || p.Pos.Y > height+2*p.Radius
}

type Electron struct {
	Pos    geom.Point
	Radius float64
	Energy float64 // J
	Speed  float64 // px per tick
}

// NewElectron converts the physical speed sqrt(2E/m) to pixels per tick
// with scale.
func NewElectron(at geom.Point, radius, energy, scale float64) *Electron {
	return &Electron{
		Pos:    at,
		Radius: radius,
		Energy: energy,
		Speed:  ElectronSpeed(energy) * scale,
	}
}

func (e *Electron) Move() { e.Pos.X += e.Speed }

func (e *Electron) Hitbox() geom.Rect {
	return geom.R(math.Round(e.Pos.X), math.Round(e.Pos.Y), 2*e.Radius, 2*e.Radius)
}

// AverageSpeed is sqrt(2*mean(E)/m) over es, or 0 for an empty set.
func AverageSpeed(es []*Electron) float64 {
	if len(es) == 0 {
		return 0
	}
	total := 0.0
	for _, e := range es {
		total += e.Energy
	}
	return ElectronSpeed(total / float64(len(es)))
}
