package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/photosim/internal/metrics"
	"github.com/san-kum/photosim/internal/physics"
)

func testFactory(seed int64) (*physics.Session, error) {
	metals, err := physics.NewMetals(physics.DefaultMetals()...)
	if err != nil {
		return nil, err
	}
	cfg := physics.DefaultSessionConfig()
	cfg.Seed = seed
	s, err := physics.NewSession(cfg, metals)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Standard(30) {
		s.AddMetric(m)
	}
	return s, nil
}

var blue = physics.Params{Wavelength: 400, Intensity: 50}

func TestSimulatorRun(t *testing.T) {
	s := New(testFactory)
	steps := 0
	s.AddObserver(ObserverFunc(func(physics.StepReport) { steps++ }))

	result, err := s.Run(context.Background(), Config{Ticks: 300, Params: blue, Seed: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Trace) != 300 {
		t.Errorf("expected 300 reports, got %d", len(result.Trace))
	}
	if steps != 300 {
		t.Errorf("observer saw %d steps", steps)
	}
	if result.Metal != "Sodium" {
		t.Errorf("expected Sodium, got %s", result.Metal)
	}
	if result.Totals.Emitted == 0 || result.Totals.Liberated == 0 {
		t.Errorf("expected emission and liberation, got %+v", result.Totals)
	}
	if result.Totals.Liberated > result.Totals.Absorbed {
		t.Errorf("liberated %d exceeds absorbed %d", result.Totals.Liberated, result.Totals.Absorbed)
	}
	if _, ok := result.Metrics["photocurrent"]; !ok {
		t.Error("expected photocurrent metric")
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(testFactory)
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero ticks", Config{Ticks: 0, Params: blue}},
		{"negative intensity", Config{Ticks: 10, Params: physics.Params{Wavelength: 400, Intensity: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSimulatorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(testFactory).Run(ctx, Config{Ticks: 100, Params: blue})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(result.Trace) != 0 {
		t.Errorf("expected empty trace, got %d", len(result.Trace))
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	n := 0
	err := New(testFactory).RunWithCallback(context.Background(), Config{Ticks: 100, Params: blue}, func(physics.StepReport) bool {
		n++
		return n < 10
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 10 {
		t.Errorf("expected 10 callbacks, got %d", n)
	}
}

func TestEnsembleDeterministicPerSeed(t *testing.T) {
	cfg := Config{Ticks: 200, Params: blue}
	a, err := NewEnsemble(New(testFactory), 4, 10).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewEnsemble(New(testFactory), 4, 10).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i].Seed != int64(10+i) {
			t.Errorf("run %d: seed %d", i, a[i].Seed)
		}
		if a[i].Totals != b[i].Totals {
			t.Errorf("run %d not reproducible: %+v vs %+v", i, a[i].Totals, b[i].Totals)
		}
	}
	if m := Mean(a, "emission_rate"); m <= 0 {
		t.Errorf("expected positive mean emission rate, got %f", m)
	}
}
