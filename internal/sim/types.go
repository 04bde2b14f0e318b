package sim

import (
	"errors"
	"math"

	"github.com/san-kum/pidlab/internal/control"
)

// Dt is the fixed integration step in seconds.
const Dt = 0.05

var ErrNilProfile = errors.New("sim: nil setpoint profile")

// SetpointProfile maps elapsed time to the target value.
type SetpointProfile func(t float64) float64

// Constant returns a profile that always targets v.
func Constant(v float64) SetpointProfile {
	return func(float64) float64 { return v }
}

// Result is one simulated trajectory. All series share the same length and
// T[i] == float64(i)*Dt. Error is nil for baseline runs.
type Result struct {
	Strategy control.Strategy `json:"-"`
	Dt       float64          `json:"dt"`
	Duration float64          `json:"duration"`
	T        []float64        `json:"t"`
	Temp     []float64        `json:"temp"`
	Control  []float64        `json:"control"`
	Error    []float64        `json:"error,omitempty"`
	Setpoint []float64        `json:"setpoint"`
}

func (r *Result) Len() int { return len(r.T) }

// Empty reports whether there is nothing to display.
func (r *Result) Empty() bool { return len(r.T) == 0 }

// IsValid reports whether every recorded state is finite.
func (r *Result) IsValid() bool {
	for _, v := range r.Temp {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Steps returns floor(duration/Dt), or 0 when duration is not a positive
// finite number.
func Steps(duration float64) int {
	if !(duration > 0) || math.IsInf(duration, 0) {
		return 0
	}
	return int(math.Floor(duration / Dt))
}
