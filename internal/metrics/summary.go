package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/pidlab/internal/sim"
)

type Summary struct {
	SettlingTime   float64 `json:"settling_time" yaml:"settling_time"`
	MaxOvershoot   float64 `json:"max_overshoot" yaml:"max_overshoot"`
	FinalError     float64 `json:"final_error" yaml:"final_error"`
	Oscillations   int     `json:"oscillations" yaml:"oscillations"`
	MeanAbsError   float64 `json:"mae" yaml:"mae"`
	TotalVariation float64 `json:"total_variation" yaml:"total_variation"`
	ControlEffort  float64 `json:"control_effort" yaml:"control_effort"`
}

func Compute(r *sim.Result) Summary {
	return Summary{
		SettlingTime:   SettlingTime(r),
		MaxOvershoot:   MaxOvershoot(r),
		FinalError:     FinalError(r),
		Oscillations:   Oscillations(r),
		MeanAbsError:   MeanAbsError(r),
		TotalVariation: TotalVariation(r),
		ControlEffort:  ControlEffort(r),
	}
}

// Map flattens the summary for tabular output and metric lookup by name.
func (s Summary) Map() map[string]float64 {
	return map[string]float64{
		"settling_time":   s.SettlingTime,
		"max_overshoot":   s.MaxOvershoot,
		"final_error":     s.FinalError,
		"oscillations":    float64(s.Oscillations),
		"mae":             s.MeanAbsError,
		"total_variation": s.TotalVariation,
		"control_effort":  s.ControlEffort,
	}
}

func Names() []string {
	names := make([]string, 0, 7)
	for k := range (Summary{}).Map() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named metric of s.
func (s Summary) Lookup(name string) (float64, error) {
	v, ok := s.Map()[name]
	if !ok {
		return 0, fmt.Errorf("unknown metric: %s (available: %v)", name, Names())
	}
	return v, nil
}
