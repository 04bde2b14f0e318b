package experiment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/pidlab/internal/control"
	"github.com/san-kum/pidlab/internal/metrics"
	"github.com/san-kum/pidlab/internal/scenario"
	"github.com/san-kum/pidlab/internal/sim"
)

// Mode selects which gain a sweep varies.
type Mode string

const (
	ModeP Mode = "P"
	ModeI Mode = "I"
	ModeD Mode = "D"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToUpper(s)); m {
	case ModeP, ModeI, ModeD:
		return m, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownMode, s)
}

type sweepDef struct {
	title     string
	values    []float64
	tolerance float64
	// gains builds the member gains for value v from the user's gains.
	gains func(user control.Gains, v float64) control.Gains
	// selected is the user's gain that the sweep varies.
	selected func(user control.Gains) float64
	demo     func(user control.Gains) string
}

var sweeps = map[Mode]sweepDef{
	ModeP: {
		title:     "P controls speed and initial overshoot",
		values:    []float64{1.0, 2.5, 4.5, 7.0},
		tolerance: 0.3,
		gains: func(u control.Gains, v float64) control.Gains {
			return control.Gains{Kp: v, Ki: u.Ki, Kd: u.Kd}
		},
		selected: func(u control.Gains) float64 { return u.Kp },
		demo:     func(control.Gains) string { return "" },
	},
	ModeI: {
		title:     "I removes steady-state error",
		values:    []float64{0.0, 0.3, 0.8, 1.5},
		tolerance: 0.05,
		gains: func(u control.Gains, v float64) control.Gains {
			return control.Gains{Kp: 3.0, Ki: v, Kd: u.Kd}
		},
		selected: func(u control.Gains) float64 { return u.Ki },
		demo: func(u control.Gains) string {
			return fmt.Sprintf("demo: Kp=3.0, Kd=%.1f", u.Kd)
		},
	},
	ModeD: {
		title:     "D dampens oscillations and reduces overshoot",
		values:    []float64{0.0, 2.0, 4.5, 7.0},
		tolerance: 0.3,
		gains: func(u control.Gains, v float64) control.Gains {
			return control.Gains{Kp: 6.0, Ki: 0.8, Kd: v}
		},
		selected: func(u control.Gains) float64 { return u.Kd },
		demo:     func(control.Gains) string { return "demo: Kp=6.0, Ki=0.8" },
	},
}

type SweepMember struct {
	Outcome
	Label       string `json:"label"`
	Highlighted bool   `json:"highlighted"`
}

// SweepResult holds the user's run, the comparison overlays and the
// coaching hints for the user's gains. Solved marks a finished tuning.
type SweepResult struct {
	Mode     Mode          `json:"mode"`
	Title    string        `json:"title"`
	Demo     string        `json:"demo,omitempty"`
	Scenario string        `json:"scenario"`
	Current  Outcome       `json:"current"`
	Members  []SweepMember `json:"members"`
	Hints    []string      `json:"hints"`
	Solved   bool          `json:"solved"`
}

// Sweep runs the user's gains g on sc together with the overlay runs of
// mode, all concurrently.
func (r *Runner) Sweep(ctx context.Context, mode Mode, g control.Gains, sc scenario.Scenario) (*SweepResult, error) {
	def, ok := sweeps[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}

	runs := make([]sim.Run, 0, len(def.values)+1)
	runs = append(runs, sc.Run("current", control.NewPIDStrategy(g)))
	for _, v := range def.values {
		label := fmt.Sprintf("K%s=%g", strings.ToLower(string(mode)), v)
		runs = append(runs, sc.Run(label, control.NewPIDStrategy(def.gains(g, v))))
	}

	outs, err := r.runAll(ctx, runs)
	if err != nil {
		return nil, err
	}

	res := &SweepResult{
		Mode:     mode,
		Title:    def.title,
		Demo:     def.demo(g),
		Scenario: sc.Name,
		Current:  outs[0],
		Members:  make([]SweepMember, len(def.values)),
		Hints:    metrics.Hints(g, outs[0].Summary),
		Solved:   metrics.Solved(g, outs[0].Summary),
	}
	for i, v := range def.values {
		res.Members[i] = SweepMember{
			Outcome:     outs[i+1],
			Label:       outs[i+1].Name,
			Highlighted: math.Abs(v-def.selected(g)) < def.tolerance,
		}
	}
	return res, nil
}
