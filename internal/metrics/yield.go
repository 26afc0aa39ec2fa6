package metrics

import (
	"github.com/san-kum/photosim/internal/physics"
)

// QuantumYield is the fraction of absorbed photons that freed an electron.
type QuantumYield struct {
	name      string
	absorbed  int
	liberated int
}

func NewQuantumYield() *QuantumYield {
	return &QuantumYield{name: "quantum_yield"}
}

func (q *QuantumYield) Name() string { return q.name }

func (q *QuantumYield) Observe(r physics.StepReport) {
	q.absorbed += r.Absorbed
	q.liberated += r.Liberated
}

func (q *QuantumYield) Value() float64 {
	if q.absorbed == 0 {
		return 0
	}
	return float64(q.liberated) / float64(q.absorbed)
}

func (q *QuantumYield) Reset() {
	q.absorbed = 0
	q.liberated = 0
}

// Standard returns the metrics attached to every simulator session.
func Standard(tickRate float64) []physics.Metric {
	return []physics.Metric{
		NewMeanSpeed(),
		NewPeakSpeed(),
		NewPhotocurrent(tickRate),
		NewEmissionRate(tickRate),
		NewQuantumYield(),
	}
}
