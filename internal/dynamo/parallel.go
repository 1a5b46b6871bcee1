package dynamo

import (
	"context"
	"sync"
)

// Ensemble runs n independent simulations in parallel. Each goroutine calls
// build to obtain its own simulator and initial state, so no system instance
// or constant vector is ever shared between runs.
type Ensemble struct {
	n     int
	build func(i int) (*Simulator, State, error)
}

func NewEnsemble(n int, build func(i int) (*Simulator, State, error)) *Ensemble {
	return &Ensemble{n: n, build: build}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.n)
	errs := make([]error, e.n)

	var wg sync.WaitGroup
	for i := 0; i < e.n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sim, x0, err := e.build(idx)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = sim.Run(ctx, x0, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
