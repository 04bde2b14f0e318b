package metrics

import (
	"math"

	"github.com/san-kum/pidlab/internal/sim"
)

// SettleTolerance is the band around the setpoint used by SettlingTime.
const SettleTolerance = 0.5

// MaxOvershoot is the largest excursion of the state above the setpoint,
// never below zero.
func MaxOvershoot(r *sim.Result) float64 {
	peak := 0.0
	for i, y := range r.Temp {
		if d := y - r.Setpoint[i]; d > peak {
			peak = d
		}
	}
	return peak
}

func FinalError(r *sim.Result) float64 {
	n := r.Len()
	if n == 0 {
		return 0
	}
	return math.Abs(r.Temp[n-1] - r.Setpoint[n-1])
}

// SettlingTime is the first sample time inside the tolerance band, or the
// run duration when the band is never reached.
func SettlingTime(r *sim.Result) float64 {
	for i, y := range r.Temp {
		if math.Abs(y-r.Setpoint[i]) < SettleTolerance {
			return r.T[i]
		}
	}
	return r.Duration
}

// MeanAbsError averages |error|. Baseline results carry no error series, so
// Temp-Setpoint is used instead.
func MeanAbsError(r *sim.Result) float64 {
	n := r.Len()
	if n == 0 {
		return 0
	}

	sum := 0.0
	if r.Error != nil {
		for _, e := range r.Error {
			sum += math.Abs(e)
		}
	} else {
		for i, y := range r.Temp {
			sum += math.Abs(y - r.Setpoint[i])
		}
	}
	return sum / float64(n)
}
