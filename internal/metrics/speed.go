package metrics

import (
	"math"

	"github.com/san-kum/photosim/internal/physics"
)

// MeanSpeed averages the per-tick electron speed over ticks that had live
// electrons.
type MeanSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(r physics.StepReport) {
	if r.AverageSpeed <= 0 {
		return
	}
	m.sum += r.AverageSpeed
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

type PeakSpeed struct {
	name string
	max  float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(r physics.StepReport) {
	p.max = math.Max(p.max, r.AverageSpeed)
}

func (p *PeakSpeed) Value() float64 { return p.max }
func (p *PeakSpeed) Reset()         { p.max = 0 }
