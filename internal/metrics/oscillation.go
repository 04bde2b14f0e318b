package metrics

import "github.com/san-kum/pidlab/internal/sim"

// Oscillations counts direction reversals of the state and halves them:
// one up-swing plus one down-swing is a full oscillation.
func Oscillations(r *sim.Result) int {
	if r.Len() < 3 {
		return 0
	}

	changes := 0
	prev := sign(r.Temp[1] - r.Temp[0])
	for i := 2; i < r.Len(); i++ {
		s := sign(r.Temp[i] - r.Temp[i-1])
		if s != prev {
			changes++
		}
		prev = s
	}
	return changes / 2
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
