package analysis

import (
	"context"
	"fmt"

	"github.com/san-kum/photosim/internal/physics"
	"github.com/san-kum/photosim/internal/sim"
)

// SweepPoint is the outcome of one run at one parameter value.
type SweepPoint struct {
	Param        float64
	Photocurrent float64 // electrons collected per second
	MeanSpeed    float64
	Liberated    int
	Absorbed     int
}

// Sweep runs base once per value of a parameter from lo to hi, setting it
// with apply. Every run uses base.Seed.
func Sweep(ctx context.Context, factory sim.Factory, base sim.Config, lo, hi float64, steps int,
	apply func(*physics.Params, float64)) ([]SweepPoint, error) {
	if steps <= 1 {
		steps = 2 // Prevent division by zero
	}
	step := (hi - lo) / float64(steps-1)
	runner := sim.New(factory)

	points := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		v := lo + float64(i)*step
		cfg := base
		apply(&cfg.Params, v)

		res, err := runner.Run(ctx, cfg)
		if err != nil {
			return points, fmt.Errorf("sweep at %g: %w", v, err)
		}
		points = append(points, SweepPoint{
			Param:        v,
			Photocurrent: res.Metrics["photocurrent"],
			MeanSpeed:    res.Metrics["mean_speed"],
			Liberated:    res.Totals.Liberated,
			Absorbed:     res.Totals.Absorbed,
		})
	}
	return points, nil
}

// SweepStopVoltage traces photocurrent against stopping voltage.
func SweepStopVoltage(ctx context.Context, factory sim.Factory, base sim.Config, lo, hi float64, steps int) ([]SweepPoint, error) {
	return Sweep(ctx, factory, base, lo, hi, steps, func(p *physics.Params, v float64) { p.StopVoltage = v })
}

// SweepWavelength traces photocurrent against wavelength in nm.
func SweepWavelength(ctx context.Context, factory sim.Factory, base sim.Config, lo, hi float64, steps int) ([]SweepPoint, error) {
	return Sweep(ctx, factory, base, lo, hi, steps, func(p *physics.Params, v float64) { p.Wavelength = v })
}

// CutOff returns the first parameter value at which nothing is liberated,
// or false if every point liberated electrons.
func CutOff(points []SweepPoint) (float64, bool) {
	for _, p := range points {
		if p.Liberated == 0 {
			return p.Param, true
		}
	}
	return 0, false
}
