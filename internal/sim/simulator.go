// Package sim runs photoelectric sessions without a front end.
package sim

import (
	"context"

	"github.com/san-kum/photosim/internal/physics"
)

type Simulator struct {
	factory   Factory
	observers []Observer
}

func New(factory Factory) *Simulator {
	return &Simulator{factory: factory}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run steps a new session cfg.Ticks times with fixed parameters. On
// cancellation the partial result is returned with the context error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	session, err := s.factory(cfg.Seed)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Seed:  cfg.Seed,
		Metal: session.Current().Name,
		Trace: make([]physics.StepReport, 0, cfg.Ticks),
	}
	defer func() {
		result.Metrics = session.Metrics()
		result.Totals = Sum(result.Trace)
	}()

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		rep, err := session.Step(cfg.Params)
		if err != nil {
			return result, err
		}
		for _, obs := range s.observers {
			obs.OnStep(rep)
		}
		result.Trace = append(result.Trace, rep)
	}
	return result, nil
}

// RunWithCallback steps until cfg.Ticks, cancellation, or the callback
// returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(physics.StepReport) bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	session, err := s.factory(cfg.Seed)
	if err != nil {
		return err
	}

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rep, err := session.Step(cfg.Params)
		if err != nil {
			return err
		}
		if !callback(rep) {
			return nil
		}
	}
	return nil
}
