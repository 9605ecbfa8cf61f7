package dynamo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// StepAll advances each body once, running up to workers bodies at a time.
// Bodies must be distinct; they share no state. workers <= 0 uses GOMAXPROCS.
func StepAll(ctx context.Context, bodies []*Body, workers int) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(bodies) < 2 {
		for _, b := range bodies {
			if err := ctx.Err(); err != nil {
				return err
			}
			b.Step()
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, b := range bodies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b.Step()
			return nil
		})
	}
	return g.Wait()
}
