package metrics

import (
	"math"

	"github.com/san-kum/pidlab/internal/sim"
)

// TotalVariation sums |u[i] - u[i-1]|. Lower means a smoother actuator.
func TotalVariation(r *sim.Result) float64 {
	tv := 0.0
	for i := 1; i < len(r.Control); i++ {
		tv += math.Abs(r.Control[i] - r.Control[i-1])
	}
	return tv
}

// ControlEffort is the mean |u| over the run.
func ControlEffort(r *sim.Result) float64 {
	if len(r.Control) == 0 {
		return 0
	}
	sum := 0.0
	for _, u := range r.Control {
		sum += math.Abs(u)
	}
	return sum / float64(len(r.Control))
}
