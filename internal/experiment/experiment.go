package experiment

import (
	"context"
	"errors"
	"time"

	"github.com/san-kum/pidlab/internal/control"
	"github.com/san-kum/pidlab/internal/metrics"
	"github.com/san-kum/pidlab/internal/scenario"
	"github.com/san-kum/pidlab/internal/sim"
	"go.uber.org/zap"
)

var (
	ErrUnknownMode   = errors.New("experiment: unknown sweep mode")
	ErrUnknownMetric = errors.New("experiment: unknown metric")
)

// Outcome is one simulated run with its metrics.
type Outcome struct {
	Name     string           `json:"name"`
	Strategy control.Strategy `json:"-"`
	Gains    control.Gains    `json:"gains"`
	Result   *sim.Result      `json:"result"`
	Summary  metrics.Summary  `json:"summary"`
}

// Comparison is a PID run scored against the baseline on the same scenario.
type Comparison struct {
	Scenario  string            `json:"scenario"`
	PID       Outcome           `json:"pid"`
	Baseline  Outcome           `json:"baseline"`
	Scorecard metrics.Scorecard `json:"scorecard"`
}

type Runner struct {
	logger  *zap.Logger
	workers int
}

// NewRunner returns a runner executing at most workers simulations at once
// (unbounded when workers <= 0). A nil logger disables logging.
func NewRunner(logger *zap.Logger, workers int) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, workers: workers}
}

// Run simulates a single strategy on sc.
func (r *Runner) Run(ctx context.Context, sc scenario.Scenario, strategy control.Strategy) (*Outcome, error) {
	outs, err := r.runAll(ctx, []sim.Run{sc.Run(strategy.Kind.String(), strategy)})
	if err != nil {
		return nil, err
	}
	return &outs[0], nil
}

// Compare runs g and the baseline on sc concurrently and scores them.
func (r *Runner) Compare(ctx context.Context, g control.Gains, sc scenario.Scenario) (*Comparison, error) {
	outs, err := r.runAll(ctx, []sim.Run{
		sc.Run("pid", control.NewPIDStrategy(g)),
		sc.Run("baseline", control.NewBaselineStrategy()),
	})
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{
		Scenario:  sc.Name,
		PID:       outs[0],
		Baseline:  outs[1],
		Scorecard: metrics.CompareSummaries(outs[0].Summary, outs[1].Summary),
	}

	r.logger.Info("comparison finished",
		zap.String("scenario", sc.Name),
		zap.Int("wins", cmp.Scorecard.Wins()),
		zap.String("verdict", string(cmp.Scorecard.Verdict())),
	)
	return cmp, nil
}

func (r *Runner) runAll(ctx context.Context, runs []sim.Run) ([]Outcome, error) {
	start := time.Now()
	results, err := sim.RunAll(ctx, runs, r.workers)
	if err != nil {
		r.logger.Error("simulation failed", zap.Error(err))
		return nil, err
	}

	outs := make([]Outcome, len(runs))
	for i, res := range results {
		outs[i] = Outcome{
			Name:     runs[i].Name,
			Strategy: runs[i].Strategy,
			Gains:    runs[i].Strategy.Gains,
			Result:   res,
			Summary:  metrics.Compute(res),
		}
		if !res.IsValid() {
			r.logger.Warn("trajectory diverged",
				zap.String("run", runs[i].Name),
				zap.Stringer("strategy", runs[i].Strategy),
			)
		}
		if res.Empty() {
			r.logger.Warn("empty trajectory", zap.String("run", runs[i].Name), zap.Float64("duration", runs[i].Duration))
		}
	}

	r.logger.Debug("simulations finished",
		zap.Int("runs", len(runs)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return outs, nil
}
