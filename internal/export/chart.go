package export

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	ChartWidth  = 8 * vg.Inch
	ChartHeight = 5 * vg.Inch
)

func line(xs, ys []float64) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return plotter.NewLine(pts)
}

func newPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = ylabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

// TrackingPlot draws each run's state and the setpoint of the first run.
func TrackingPlot(title string, runs ...Run) (*plot.Plot, error) {
	if len(runs) == 0 || runs[0].Result.Empty() {
		return nil, fmt.Errorf("plot data invalid")
	}
	p := newPlot(title, "state")

	for i, run := range runs {
		l, err := line(run.Result.T, run.Result.Temp)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(run.Name, l)
	}

	sp, err := line(runs[0].Result.T, runs[0].Result.Setpoint)
	if err != nil {
		return nil, err
	}
	sp.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(sp)
	p.Legend.Add("setpoint", sp)

	return p, nil
}

// ControlPlot draws each run's actuation.
func ControlPlot(title string, runs ...Run) (*plot.Plot, error) {
	if len(runs) == 0 || runs[0].Result.Empty() {
		return nil, fmt.Errorf("plot data invalid")
	}
	p := newPlot(title, "control")
	p.Y.Min, p.Y.Max = -110, 110

	for i, run := range runs {
		l, err := line(run.Result.T, run.Result.Control)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(run.Name, l)
	}
	return p, nil
}

// SaveChart writes p to path; the extension (.png, .svg, .pdf) picks the
// format.
func SaveChart(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	return p.Save(ChartWidth, ChartHeight, path)
}

// SaveCharts writes <dir>/tracking<ext> and <dir>/control<ext>.
func SaveCharts(dir, ext, title string, runs ...Run) ([]string, error) {
	tracking, err := TrackingPlot(title, runs...)
	if err != nil {
		return nil, err
	}
	ctrl, err := ControlPlot(title+" (control)", runs...)
	if err != nil {
		return nil, err
	}

	paths := []string{
		filepath.Join(dir, "tracking"+ext),
		filepath.Join(dir, "control"+ext),
	}
	if err := SaveChart(tracking, paths[0]); err != nil {
		return nil, err
	}
	if err := SaveChart(ctrl, paths[1]); err != nil {
		return nil, err
	}
	return paths, nil
}
