package physics

import "math"

// Emitter paces photon emission. While intensity is positive it fires
// when the countdown is zero and then waits ceil(100/intensity) ticks.
type Emitter struct {
	countdown int
}

func Period(intensity float64) int {
	if intensity <= 0 {
		return 0
	}
	return int(math.Ceil(100 / intensity))
}

// Tick advances the countdown and reports whether to emit this tick. With
// zero intensity the countdown is left untouched.
func (e *Emitter) Tick(intensity float64) bool {
	if intensity <= 0 {
		return false
	}
	if e.countdown == 0 {
		e.countdown = Period(intensity)
		return true
	}
	e.countdown--
	return false
}

func (e *Emitter) Countdown() int { return e.countdown }
func (e *Emitter) Reset()         { e.countdown = 0 }
