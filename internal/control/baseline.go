package control

const (
	Deadband   = 1.5
	HeatOutput = 50.0
	CoolOutput = -20.0
)

// Baseline is the stateless bang-bang law used as the comparison benchmark.
// Heating is stronger than cooling.
func Baseline(y, setpoint float64) float64 {
	switch {
	case y < setpoint-Deadband:
		return HeatOutput
	case y > setpoint+Deadband:
		return CoolOutput
	default:
		return 0
	}
}
