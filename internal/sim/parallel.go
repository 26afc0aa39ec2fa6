package sim

import (
	"context"
	"sync"
)

// Ensemble repeats a run over consecutive seeds in parallel.
type Ensemble struct {
	base      *Simulator
	numRuns   int
	seedStart int64
}

func NewEnsemble(s *Simulator, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: s, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			// Observers are not shared across goroutines.
			results[idx], errs[idx] = New(e.base.factory).Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Mean averages one metric over an ensemble.
func Mean(results []*Result, metric string) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range results {
		sum += r.Metrics[metric]
	}
	return sum / float64(len(results))
}
