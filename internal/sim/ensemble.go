package sim

import (
	"context"
	"sync"

	"github.com/san-kum/springies/internal/env"
)

// Ensemble runs the same model under several environment parameter
// sets concurrently. Each run gets its own freshly built Runner, so
// nothing is shared between goroutines.
type Ensemble struct {
	build  func(env.Params) (*Runner, error)
	params []env.Params
}

func NewEnsemble(build func(env.Params) (*Runner, error), params []env.Params) *Ensemble {
	return &Ensemble{build: build, params: params}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.params))
	errs := make([]error, len(e.params))

	var wg sync.WaitGroup
	for i := range e.params {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			runner, err := e.build(e.params[idx])
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = runner.RunConfig(ctx, cfg)
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
