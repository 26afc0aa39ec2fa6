package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// PowerSpectrum returns |X[k]| for k in [0, n/2) of the mean-removed,
// Hann-windowed series.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	x := make([]float64, len(data))
	mean := Summarize(data).Mean
	for i, v := range data {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)

	spec := fft.FFTReal(x)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// Period is the strongest periodic component of a series.
type Period struct {
	Bin   int
	Ticks float64
	Hz    float64
	Power float64
}

// DominantPeriod finds the largest non-DC bin. A flat or short series has
// no period and returns the zero value.
func DominantPeriod(data []float64, tickRate float64) Period {
	ps := PowerSpectrum(data)
	best := Period{}
	for k := 1; k < len(ps); k++ {
		if ps[k] > best.Power {
			best = Period{Bin: k, Power: ps[k]}
		}
	}
	if best.Bin == 0 || best.Power < 1e-9 {
		return Period{}
	}
	n := float64(len(data))
	best.Ticks = n / float64(best.Bin)
	best.Hz = float64(best.Bin) * tickRate / n
	return best
}
