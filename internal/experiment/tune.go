package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/pidlab/internal/metrics"
	"github.com/san-kum/pidlab/internal/optim"
	"github.com/san-kum/pidlab/internal/scenario"
	"go.uber.org/zap"
)

// Tune grid-searches gains on sc minimizing metricName and scores the
// winner against the baseline.
func (r *Runner) Tune(ctx context.Context, grid *optim.GridSearch, sc scenario.Scenario, metricName string) (*optim.Candidate, *Comparison, error) {
	if _, err := (metrics.Summary{}).Lookup(metricName); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownMetric, metricName)
	}

	start := time.Now()
	r.logger.Info("grid search started",
		zap.String("scenario", sc.Name),
		zap.String("metric", metricName),
		zap.Int("candidates", grid.Size()),
	)

	best, err := grid.Search(ctx, sc, metricName, r.workers)
	if err != nil {
		return nil, nil, err
	}

	r.logger.Info("grid search finished",
		zap.Float64("kp", best.Gains.Kp),
		zap.Float64("ki", best.Gains.Ki),
		zap.Float64("kd", best.Gains.Kd),
		zap.Float64(metricName, best.Value),
		zap.Duration("elapsed", time.Since(start)),
	)

	cmp, err := r.Compare(ctx, best.Gains, sc)
	if err != nil {
		return nil, nil, err
	}
	return best, cmp, nil
}
