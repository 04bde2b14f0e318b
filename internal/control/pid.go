package control

const (
	UMin = -100.0
	UMax = 100.0
)

type Gains struct {
	Kp float64 `yaml:"kp" json:"kp"`
	Ki float64 `yaml:"ki" json:"ki"`
	Kd float64 `yaml:"kd" json:"kd"`
}

type PID struct {
	Gains
	integral float64
	prevErr  float64
}

func NewPID(g Gains) *PID {
	return &PID{Gains: g}
}

// Update consumes the error e at step i and returns the clipped actuation.
// The derivative is a backward difference and is zero on the first step.
func (p *PID) Update(e float64, i int, dt float64) float64 {
	p.integral += e * dt

	derivative := 0.0
	if i > 0 {
		derivative = (e - p.prevErr) / dt
	}

	u := p.Kp*e + p.Ki*p.integral + p.Kd*derivative
	p.prevErr = e

	return Clip(u, UMin, UMax)
}

func (p *PID) Integral() float64 { return p.integral }

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
}

func Clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
