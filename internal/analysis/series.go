package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/photosim/internal/physics"
)

var extractors = map[string]func(physics.StepReport) float64{
	"emitted": func(r physics.StepReport) float64 {
		if r.Emitted {
			return 1
		}
		return 0
	},
	"absorbed":      func(r physics.StepReport) float64 { return float64(r.Absorbed) },
	"liberated":     func(r physics.StepReport) float64 { return float64(r.Liberated) },
	"collected":     func(r physics.StepReport) float64 { return float64(r.Collected) },
	"escaped":       func(r physics.StepReport) float64 { return float64(r.Escaped) },
	"photons":       func(r physics.StepReport) float64 { return float64(r.Photons) },
	"electrons":     func(r physics.StepReport) float64 { return float64(r.Electrons) },
	"average_speed": func(r physics.StepReport) float64 { return r.AverageSpeed },
}

// SeriesNames lists the names Series accepts, in trace column order.
func SeriesNames() []string {
	return []string{"emitted", "absorbed", "liberated", "collected", "escaped", "photons", "electrons", "average_speed"}
}

// Series extracts one column of a trace. Unknown names return nil.
func Series(trace []physics.StepReport, name string) []float64 {
	f, ok := extractors[name]
	if !ok {
		return nil
	}
	out := make([]float64, len(trace))
	for i, r := range trace {
		out[i] = f(r)
	}
	return out
}

// LookupSeries is Series with an error for unknown names.
func LookupSeries(trace []physics.StepReport, name string) ([]float64, error) {
	if _, ok := extractors[name]; !ok {
		return nil, fmt.Errorf("unknown series %q (want one of %v)", name, SeriesNames())
	}
	return Series(trace, name), nil
}

type Stats struct {
	Mean, StdDev, Min, Max float64
}

func Summarize(xs []float64) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	s := Stats{Min: xs[0], Max: xs[0]}
	for _, x := range xs {
		s.Mean += x
		s.Min, s.Max = math.Min(s.Min, x), math.Max(s.Max, x)
	}
	s.Mean /= float64(len(xs))
	for _, x := range xs {
		s.StdDev += (x - s.Mean) * (x - s.Mean)
	}
	s.StdDev = math.Sqrt(s.StdDev / float64(len(xs)))
	return s
}
