package physics

import "math"

// Coefficients of the default plant.
const (
	DefaultNaturalFreq = 0.8
	DefaultDamping     = 0.15
	DefaultGain        = 0.75
)

// State is the plant's position and velocity.
type State struct {
	Y    float64
	YDot float64
}

// IsValid reports whether both position and velocity are finite.
func (s State) IsValid() bool {
	return !math.IsNaN(s.Y) && !math.IsInf(s.Y, 0) &&
		!math.IsNaN(s.YDot) && !math.IsInf(s.YDot, 0)
}

// Plant is y'' + 2ζωn·y' + ωn²·y = K·ωn²·u.
type Plant struct {
	Wn   float64 // natural frequency
	Zeta float64 // damping ratio
	Gain float64 // process gain applied to the actuation
}

// DefaultPlant returns the underdamped plant used by every simulation.
func DefaultPlant() Plant {
	return Plant{
		Wn:   DefaultNaturalFreq,
		Zeta: DefaultDamping,
		Gain: DefaultGain,
	}
}

// Accel returns y'' for state s under actuation u.
func (p Plant) Accel(s State, u float64) float64 {
	wn2 := p.Wn * p.Wn
	return p.Gain*wn2*u - 2*p.Zeta*p.Wn*s.YDot - wn2*s.Y
}

// Step advances s by dt. The updated velocity is used for the position.
func (p Plant) Step(s State, u, dt float64) State {
	yDot := s.YDot + p.Accel(s, u)*dt
	return State{
		Y:    s.Y + yDot*dt,
		YDot: yDot,
	}
}

// Equilibrium is the resting position under a constant actuation u.
func (p Plant) Equilibrium(u float64) float64 {
	return p.Gain * u
}
