// Package export writes simulated runs as CSV, JSON or chart images.
package export

import (
	"github.com/san-kum/pidlab/internal/control"
	"github.com/san-kum/pidlab/internal/metrics"
	"github.com/san-kum/pidlab/internal/sim"
)

// Run is a named trajectory to export.
type Run struct {
	Name   string
	Result *sim.Result
}

type RunData struct {
	Name       string          `json:"name"`
	Controller string          `json:"controller"`
	Gains      *control.Gains  `json:"gains,omitempty"`
	Steps      int             `json:"steps"`
	Metrics    metrics.Summary `json:"metrics"`
	*sim.Result
}

type ExportData struct {
	Scenario string    `json:"scenario"`
	Dt       float64   `json:"dt"`
	Duration float64   `json:"duration"`
	Runs     []RunData `json:"runs"`
}

func NewExportData(scenario string, runs ...Run) ExportData {
	data := ExportData{
		Scenario: scenario,
		Dt:       sim.Dt,
		Runs:     make([]RunData, len(runs)),
	}

	for i, r := range runs {
		rd := RunData{
			Name:       r.Name,
			Controller: r.Result.Strategy.Kind.String(),
			Steps:      r.Result.Len(),
			Metrics:    metrics.Compute(r.Result),
			Result:     r.Result,
		}
		if r.Result.Strategy.Kind == control.KindPID {
			g := r.Result.Strategy.Gains
			rd.Gains = &g
		}
		data.Runs[i] = rd
		if r.Result.Duration > data.Duration {
			data.Duration = r.Result.Duration
		}
	}

	return data
}
