package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/pidlab/internal/control"
	"golang.org/x/sync/errgroup"
)

// Run describes one independent simulation.
type Run struct {
	Name     string
	Strategy control.Strategy
	Profile  SetpointProfile
	Initial  float64
	Duration float64
}

// RunAll simulates runs concurrently, at most workers at a time (no limit
// when workers <= 0). Results are returned in the order of runs.
func RunAll(ctx context.Context, runs []Run, workers int) ([]*Result, error) {
	results := make([]*Result, len(runs))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, r := range runs {
		i, r := i, r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Simulate(r.Strategy, r.Profile, r.Initial, r.Duration)
			if err != nil {
				return fmt.Errorf("run %q: %w", r.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
