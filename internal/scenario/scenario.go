// Package scenario holds the named setpoint profiles used to exercise the
// controllers: the three learn challenges and the three tune scenarios.
package scenario

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/pidlab/internal/control"
	"github.com/san-kum/pidlab/internal/sim"
)

// DefaultInitial is the starting plant state of every built-in scenario.
const DefaultInitial = 18.0

var ErrUnknownScenario = errors.New("scenario: unknown scenario")

type Scenario struct {
	Name        string
	Description string
	Initial     float64
	Duration    float64
	Profile     sim.SetpointProfile
	Changes     []Change
}

// Change switches the target to Value from time At onwards.
type Change struct {
	At    float64
	Value float64
}

// Step builds a piecewise-constant profile starting at first. Changes must
// be ordered by time.
func Step(first float64, changes ...Change) sim.SetpointProfile {
	cs := append([]Change(nil), changes...)
	return func(t float64) float64 {
		v := first
		for _, c := range cs {
			if t < c.At {
				break
			}
			v = c.Value
		}
		return v
	}
}

func newScenario(name, desc string, duration, first float64, changes ...Change) Scenario {
	return Scenario{
		Name:        name,
		Description: desc,
		Initial:     DefaultInitial,
		Duration:    duration,
		Profile:     Step(first, changes...),
		Changes:     changes,
	}
}

var scenarios = map[string]func() Scenario{
	"constant": func() Scenario {
		return newScenario("constant", "hold 22", 50, 22)
	},
	"changing": func() Scenario {
		return newScenario("changing", "22, then 24 at t=25", 50, 22, Change{25, 24})
	},
	"multi-step": func() Scenario {
		return newScenario("multi-step", "22, 25 at t=15, 21 at t=30", 50, 22,
			Change{15, 25}, Change{30, 21})
	},
	"single-step": func() Scenario {
		return newScenario("single-step", "18 -> 22", 30, 22)
	},
	"double-step": func() Scenario {
		return newScenario("double-step", "18 -> 22 -> 25", 40, 22, Change{20, 25})
	},
	"triple-step": func() Scenario {
		return newScenario("triple-step", "18 -> 22 -> 25 -> 20", 50, 22,
			Change{15, 25}, Change{32, 20})
	},
}

// Learn and Tune list the scenarios of each workflow in display order.
var (
	Learn = []string{"constant", "changing", "multi-step"}
	Tune  = []string{"single-step", "double-step", "triple-step"}
)

func Lookup(name string) (Scenario, error) {
	fn, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownScenario, name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithDuration returns a copy of s running for d seconds instead.
func (s Scenario) WithDuration(d float64) Scenario {
	s.Duration = d
	return s
}

// WithInitial returns a copy of s starting from y.
func (s Scenario) WithInitial(y float64) Scenario {
	s.Initial = y
	return s
}

// Run describes a simulation of this scenario under strategy.
func (s Scenario) Run(name string, strategy control.Strategy) sim.Run {
	return sim.Run{
		Name:     name,
		Strategy: strategy,
		Profile:  s.Profile,
		Initial:  s.Initial,
		Duration: s.Duration,
	}
}

// Schedule describes the setpoint changes, e.g. "25@15s 21@30s", or "-"
// for a constant target.
func (s Scenario) Schedule() string {
	if len(s.Changes) == 0 {
		return "-"
	}
	parts := make([]string, len(s.Changes))
	for i, c := range s.Changes {
		parts[i] = fmt.Sprintf("%g@%gs", c.Value, c.At)
	}
	return strings.Join(parts, " ")
}

// Sample evaluates the profile at n evenly spaced times over [0, Duration).
func (s Scenario) Sample(n int) []float64 {
	if n <= 0 || s.Profile == nil {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Profile(s.Duration * float64(i) / float64(n))
	}
	return out
}
