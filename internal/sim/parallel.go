package sim

import (
	"context"

	"github.com/san-kum/ballsim/internal/vec"
	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent worlds with consecutive seeds in parallel. Each
// world stays on its own goroutine.
type Ensemble[V vec.Vector[V]] struct {
	params  Params[V]
	numRuns int
}

func NewEnsemble[V vec.Vector[V]](p Params[V], numRuns int) *Ensemble[V] {
	return &Ensemble[V]{params: p, numRuns: numRuns}
}

// Run returns the final stats of every world, indexed by run.
func (e *Ensemble[V]) Run(ctx context.Context, cfg RunConfig) ([]Stats, error) {
	results := make([]Stats, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		i := i
		g.Go(func() error {
			p := e.params
			p.Seed += int64(i)
			stats, err := Run(ctx, NewWorld(p), cfg, nil)
			results[i] = stats
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
