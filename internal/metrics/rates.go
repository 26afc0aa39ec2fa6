package metrics

import (
	"github.com/san-kum/photosim/internal/physics"
)

// rate counts events per second of simulated time at a fixed tick rate.
type rate struct {
	name     string
	tickRate float64
	count    int
	ticks    int
}

func (r *rate) Name() string { return r.name }

func (r *rate) Value() float64 {
	if r.ticks == 0 {
		return 0
	}
	return float64(r.count) / (float64(r.ticks) / r.tickRate)
}

func (r *rate) Reset() {
	r.count = 0
	r.ticks = 0
}

// Photocurrent is electrons reaching the collector per second.
type Photocurrent struct{ rate }

func NewPhotocurrent(tickRate float64) *Photocurrent {
	return &Photocurrent{rate{name: "photocurrent", tickRate: tickRate}}
}

func (p *Photocurrent) Observe(r physics.StepReport) {
	p.count += r.Collected
	p.ticks++
}

// Amperes converts the electron rate to a current.
func (p *Photocurrent) Amperes() float64 {
	return p.Value() * physics.ElementaryCharge
}

// EmissionRate is photons leaving the lamp per second.
type EmissionRate struct{ rate }

func NewEmissionRate(tickRate float64) *EmissionRate {
	return &EmissionRate{rate{name: "emission_rate", tickRate: tickRate}}
}

func (e *EmissionRate) Observe(r physics.StepReport) {
	if r.Emitted {
		e.count++
	}
	e.ticks++
}
