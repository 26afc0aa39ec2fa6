package sim

import (
	"fmt"

	"github.com/san-kum/photosim/internal/physics"
)

// Factory builds a fresh session for a seed. Each run gets its own, with
// metrics attached.
type Factory func(seed int64) (*physics.Session, error)

type Observer interface {
	OnStep(r physics.StepReport)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(r physics.StepReport)

func (f ObserverFunc) OnStep(r physics.StepReport) { f(r) }

type Config struct {
	Ticks  int
	Params physics.Params
	Seed   int64
}

func (c Config) Validate() error {
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	return c.Params.Validate()
}

type Result struct {
	Seed    int64
	Metal   string
	Trace   []physics.StepReport
	Metrics map[string]float64
	Totals  Totals
}

// Totals sums the per-tick counters of a trace.
type Totals struct {
	Emitted   int
	Absorbed  int
	Liberated int
	Collected int
	Escaped   int
}

func Sum(trace []physics.StepReport) Totals {
	var t Totals
	for _, r := range trace {
		if r.Emitted {
			t.Emitted++
		}
		t.Absorbed += r.Absorbed
		t.Liberated += r.Liberated
		t.Collected += r.Collected
		t.Escaped += r.Escaped
	}
	return t
}
