// Package optim searches PID gain grids for the best-scoring tuning.
package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/pidlab/internal/control"
	"github.com/san-kum/pidlab/internal/metrics"
	"github.com/san-kum/pidlab/internal/scenario"
	"github.com/san-kum/pidlab/internal/sim"
)

// GridSearch evaluates every combination of the candidate gains.
type GridSearch struct {
	Kp []float64
	Ki []float64
	Kd []float64
}

type Candidate struct {
	Gains control.Gains   `json:"gains"`
	Value float64         `json:"value"`
	Stats metrics.Summary `json:"summary"`
}

func NewGridSearch(kp, ki, kd []float64) *GridSearch {
	return &GridSearch{Kp: kp, Ki: ki, Kd: kd}
}

// Range returns lo, lo+step, ... up to and including hi (within half a step).
func Range(lo, hi, step float64) []float64 {
	if step <= 0 || hi < lo {
		return []float64{lo}
	}
	n := int(math.Floor((hi-lo)/step+0.5)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

func (g *GridSearch) Size() int {
	return len(g.Kp) * len(g.Ki) * len(g.Kd)
}

func (g *GridSearch) candidates() []control.Gains {
	out := make([]control.Gains, 0, g.Size())
	for _, kp := range g.Kp {
		for _, ki := range g.Ki {
			for _, kd := range g.Kd {
				out = append(out, control.Gains{Kp: kp, Ki: ki, Kd: kd})
			}
		}
	}
	return out
}

// Search simulates every candidate on sc and returns the one minimizing
// metricName. Diverged runs are skipped. Ties keep the earliest candidate in
// Kp, Ki, Kd order.
func (g *GridSearch) Search(ctx context.Context, sc scenario.Scenario, metricName string, workers int) (*Candidate, error) {
	if _, err := (metrics.Summary{}).Lookup(metricName); err != nil {
		return nil, err
	}

	gains := g.candidates()
	if len(gains) == 0 {
		return nil, fmt.Errorf("empty search grid")
	}

	runs := make([]sim.Run, len(gains))
	for i, gs := range gains {
		runs[i] = sc.Run(control.NewPIDStrategy(gs).String(), control.NewPIDStrategy(gs))
	}

	results, err := sim.RunAll(ctx, runs, workers)
	if err != nil {
		return nil, err
	}

	var best *Candidate
	for i, res := range results {
		if !res.IsValid() {
			continue
		}
		s := metrics.Compute(res)
		val, _ := s.Lookup(metricName)
		if best == nil || val < best.Value {
			best = &Candidate{Gains: gains[i], Value: val, Stats: s}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no stable candidate in %d runs", len(gains))
	}
	return best, nil
}
