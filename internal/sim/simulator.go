package sim

import (
	"github.com/san-kum/pidlab/internal/control"
	"github.com/san-kum/pidlab/internal/physics"
)

// Simulate runs strategy against profile starting at rest at initial for
// duration seconds. Numeric inputs never cause an error; a non-positive
// duration yields an empty result.
func Simulate(strategy control.Strategy, profile SetpointProfile, initial, duration float64) (*Result, error) {
	if err := strategy.Validate(); err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNilProfile
	}
	return run(strategy, profile, initial, duration), nil
}

func SimulatePID(g control.Gains, profile SetpointProfile, initial, duration float64) *Result {
	return run(control.NewPIDStrategy(g), profile, initial, duration)
}

// SimulateBaseline runs the bang-bang controller. The result has no Error
// series.
func SimulateBaseline(profile SetpointProfile, initial, duration float64) *Result {
	return run(control.NewBaselineStrategy(), profile, initial, duration)
}

func run(strategy control.Strategy, profile SetpointProfile, initial, duration float64) *Result {
	steps := Steps(duration)
	plant := physics.DefaultPlant()
	ctrl := control.NewController(strategy)
	recordErr := strategy.Kind == control.KindPID

	result := &Result{
		Strategy: strategy,
		Dt:       Dt,
		Duration: duration,
		T:        make([]float64, steps),
		Temp:     make([]float64, steps),
		Control:  make([]float64, steps),
		Setpoint: make([]float64, steps),
	}
	if recordErr {
		result.Error = make([]float64, steps)
	}

	x := physics.State{Y: initial}

	for i := 0; i < steps; i++ {
		t := float64(i) * Dt
		sp := profile(t)

		u, e := ctrl.Compute(x.Y, sp, i, Dt)
		x = plant.Step(x, u, Dt)

		result.T[i] = t
		result.Temp[i] = x.Y
		result.Control[i] = u
		result.Setpoint[i] = sp
		if recordErr {
			result.Error[i] = e
		}
	}

	return result
}
