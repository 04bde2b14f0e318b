package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pidlab/internal/sim"
)

// Series is one named run to overlay on a chart.
type Series struct {
	Name   string
	Result *sim.Result
}

// ChartOptions sizes the ascii charts. Zero values fall back to 80x12.
type ChartOptions struct {
	Width  int
	Height int
}

func (o ChartOptions) withDefaults() ChartOptions {
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Height <= 0 {
		o.Height = 12
	}
	return o
}

type seriesColor struct {
	ansi asciigraph.AnsiColor
	name string
}

var palette = []seriesColor{
	{asciigraph.Green, "green"},
	{asciigraph.Red, "red"},
	{asciigraph.Cyan, "cyan"},
	{asciigraph.Yellow, "yellow"},
	{asciigraph.Magenta, "magenta"},
	{asciigraph.Blue, "blue"},
}

// TrackingChart overlays the setpoint of the first run (white) with the
// state of every run. Runs with no samples are skipped.
func TrackingChart(runs []Series, opts ChartOptions) string {
	runs = nonEmpty(runs)
	if len(runs) == 0 {
		return ""
	}
	data := [][]float64{runs[0].Result.Setpoint}
	colors := []asciigraph.AnsiColor{asciigraph.White}
	for i, s := range runs {
		data = append(data, s.Result.Temp)
		colors = append(colors, palette[i%len(palette)].ansi)
	}
	return plot(data, colors, "setpoint(white) "+legend(runs), opts)
}

// ControlChart overlays the clipped actuation of every run.
func ControlChart(runs []Series, opts ChartOptions) string {
	runs = nonEmpty(runs)
	if len(runs) == 0 {
		return ""
	}
	var data [][]float64
	var colors []asciigraph.AnsiColor
	for i, s := range runs {
		data = append(data, s.Result.Control)
		colors = append(colors, palette[i%len(palette)].ansi)
	}
	return plot(data, colors, "control "+legend(runs), opts)
}

func plot(data [][]float64, colors []asciigraph.AnsiColor, caption string, opts ChartOptions) string {
	opts = opts.withDefaults()
	return asciigraph.PlotMany(data,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption),
	)
}

func nonEmpty(runs []Series) []Series {
	out := make([]Series, 0, len(runs))
	for _, s := range runs {
		if s.Result != nil && !s.Result.Empty() {
			out = append(out, s)
		}
	}
	return out
}

func legend(runs []Series) string {
	parts := make([]string, len(runs))
	for i, r := range runs {
		parts[i] = r.Name + "(" + palette[i%len(palette)].name + ")"
	}
	return strings.Join(parts, " ")
}
