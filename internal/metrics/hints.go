package metrics

import "github.com/san-kum/pidlab/internal/control"

// Hints suggests the next tuning move for g given the run summary s.
func Hints(g control.Gains, s Summary) []string {
	var hints []string

	switch {
	case g.Kp == 0:
		hints = append(hints, "start with P: try Kp=3.0")
	case g.Kp < 2.0:
		hints = append(hints, "increase P for faster response")
	}
	if s.FinalError > 1.0 && g.Ki < 0.2 {
		hints = append(hints, "add I (Ki~0.5) to eliminate steady-state error")
	}
	if s.MaxOvershoot > 2.0 && g.Kd < 1.0 {
		hints = append(hints, "add D (Kd~3.0) to reduce overshoot")
	}
	if s.Oscillations > 10 && g.Kd < 2.0 {
		hints = append(hints, "too many oscillations: increase D")
	}

	return hints
}

// Solved reports whether g is a finished PID tuning for the run: all three
// terms active, nothing left to suggest, and the state settled on target
// without large overshoot.
func Solved(g control.Gains, s Summary) bool {
	return len(Hints(g, s)) == 0 &&
		g.Kp > 0 && g.Ki > 0 && g.Kd > 0 &&
		s.FinalError < 0.5 &&
		s.MaxOvershoot < 2.0
}
