// Package tui is the interactive gain tuner: keys adjust the PID gains and
// the scenario, and every change re-runs the whole comparison.
package tui

import (
	"context"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/pidlab/internal/control"
	"github.com/san-kum/pidlab/internal/experiment"
	"github.com/san-kum/pidlab/internal/metrics"
	"github.com/san-kum/pidlab/internal/scenario"
	"github.com/san-kum/pidlab/internal/viz"
)

// knob is the adjustable range of one gain.
type knob struct {
	mode     experiment.Mode
	min, max float64
	step     float64
}

var knobs = []knob{
	{experiment.ModeP, 0, 8, 0.1},
	{experiment.ModeI, 0, 2, 0.05},
	{experiment.ModeD, 0, 8, 0.1},
}

type view int

const (
	viewCompare view = iota
	viewSweep
)

// Options seed the tuner.
type Options struct {
	Gains     control.Gains
	Scenarios []string // cycled with tab; defaults to learn then tune scenarios
	Scenario  string
	Theme     string
}

type resultMsg struct {
	seq   int
	cmp   *experiment.Comparison
	sweep *experiment.SweepResult
	err   error
}

type model struct {
	ctx    context.Context
	runner *experiment.Runner

	initial control.Gains
	gains   control.Gains
	knob    int

	scenarios []string
	scIdx     int
	view      view

	styles viz.Styles

	// seq discards results of superseded recomputations.
	seq   int
	cmp   *experiment.Comparison
	sweep *experiment.SweepResult
	err   error

	width  int
	height int
}

func newModel(ctx context.Context, runner *experiment.Runner, opts Options) model {
	names := opts.Scenarios
	if len(names) == 0 {
		names = append(append([]string(nil), scenario.Learn...), scenario.Tune...)
	}
	idx := -1
	for i, n := range names {
		if n == opts.Scenario {
			idx = i
		}
	}
	if idx < 0 {
		idx = 0
		if opts.Scenario != "" {
			names = append([]string{opts.Scenario}, names...)
		}
	}
	return model{
		ctx:       ctx,
		runner:    runner,
		initial:   opts.Gains,
		gains:     opts.Gains,
		scenarios: names,
		scIdx:     idx,
		styles:    viz.NewStyles(viz.GetTheme(opts.Theme)),
		width:     100,
		height:    40,
	}
}

// Run starts the tuner on the alternate screen and blocks until the user
// quits.
func Run(ctx context.Context, runner *experiment.Runner, opts Options) error {
	m := newModel(ctx, runner, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m model) Init() tea.Cmd { return m.recompute() }

func (m model) scenarioName() string { return m.scenarios[m.scIdx] }

// recompute runs the comparison or the sweep for the current settings.
func (m model) recompute() tea.Cmd {
	seq, g, v, mode := m.seq, m.gains, m.view, knobs[m.knob].mode
	name := m.scenarioName()
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		sc, err := scenario.Lookup(name)
		if err != nil {
			return resultMsg{seq: seq, err: err}
		}
		if v == viewSweep {
			res, err := runner.Sweep(ctx, mode, g, sc)
			return resultMsg{seq: seq, sweep: res, err: err}
		}
		cmp, err := runner.Compare(ctx, g, sc)
		return resultMsg{seq: seq, cmp: cmp, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case resultMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.err = msg.err
		if msg.cmp != nil {
			m.cmp = msg.cmp
		}
		if msg.sweep != nil {
			m.sweep = msg.sweep
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "p", "i", "d":
		m.knob = strings.Index("pid", msg.String())
		// the selected gain only matters to the sweep overlays
		if m.view == viewCompare {
			return m, nil
		}
	case "up", "k", "+", "=", "right", "l":
		m.adjust(1)
	case "down", "j", "-", "_", "left", "h":
		m.adjust(-1)
	case "tab":
		m.scIdx = (m.scIdx + 1) % len(m.scenarios)
	case "shift+tab":
		m.scIdx = (m.scIdx + len(m.scenarios) - 1) % len(m.scenarios)
	case "s":
		if m.view == viewCompare {
			m.view = viewSweep
		} else {
			m.view = viewCompare
		}
	case "t":
		m.styles = viz.NewStyles(m.styles.Theme.Next())
		return m, nil
	case "r":
		m.gains = m.initial
	default:
		return m, nil
	}
	m.seq++
	return m, m.recompute()
}

func (m *model) adjust(dir float64) {
	k := knobs[m.knob]
	g := m.gain(k.mode)
	v := math.Round((*g+dir*k.step)/k.step) * k.step
	*g = math.Min(math.Max(v, k.min), k.max)
}

func (m *model) gain(mode experiment.Mode) *float64 {
	switch mode {
	case experiment.ModeI:
		return &m.gains.Ki
	case experiment.ModeD:
		return &m.gains.Kd
	}
	return &m.gains.Kp
}

func (m model) View() string {
	st := m.styles
	var b strings.Builder

	b.WriteString("\n  " + st.Title.Render("p i d l a b") + "  " +
		st.Subtle.Render(m.scenarioName()) + "\n")
	b.WriteString("  " + st.Gains(m.gains, string(knobs[m.knob].mode)) + "\n")
	b.WriteString("  " + st.Separator(max(m.width-4, 8)) + "\n\n")

	if m.err != nil {
		b.WriteString("  " + st.Lose.Render("error: "+m.err.Error()) + "\n")
	}

	chart := viz.ChartOptions{Width: max(m.width-14, 30), Height: max((m.height-22)/2, 6)}
	switch {
	case m.view == viewSweep && m.sweep != nil:
		b.WriteString(m.viewSweep(chart))
	case m.view == viewCompare && m.cmp != nil:
		b.WriteString(m.viewCompare(chart))
	default:
		b.WriteString("  " + st.Subtle.Render("simulating...") + "\n")
	}

	b.WriteString("\n" + st.Key.Render(
		"  p/i/d select gain  ↑↓ adjust  tab scenario  s sweep  t theme  r reset  q quit") + "\n")
	return b.String()
}

func (m model) viewCompare(opts viz.ChartOptions) string {
	st := m.styles
	runs := []viz.Series{
		{Name: "pid", Result: m.cmp.PID.Result},
		{Name: "baseline", Result: m.cmp.Baseline.Result},
	}

	var b strings.Builder
	b.WriteString(indent(viz.TrackingChart(runs, opts)) + "\n\n")
	b.WriteString(indent(viz.ControlChart(runs, opts)) + "\n\n")
	b.WriteString(indent(st.Scorecard(m.cmp.Scorecard)) + "\n")
	return b.String()
}

func (m model) viewSweep(opts viz.ChartOptions) string {
	st := m.styles
	res := m.sweep

	runs := []viz.Series{{Name: "yours", Result: res.Current.Result}}
	names := []string{"yours"}
	sums := []metrics.Summary{res.Current.Summary}
	for _, mem := range res.Members {
		label := mem.Label
		if mem.Highlighted {
			label += "*"
		}
		runs = append(runs, viz.Series{Name: label, Result: mem.Result})
		names = append(names, label)
		sums = append(sums, mem.Summary)
	}

	var b strings.Builder
	b.WriteString("  " + st.Value.Render(res.Title))
	if res.Demo != "" {
		b.WriteString("  " + st.Subtle.Render(res.Demo))
	}
	b.WriteString("\n\n")
	b.WriteString(indent(viz.TrackingChart(runs, opts)) + "\n\n")
	b.WriteString(indent(st.SummaryTable(names, sums)) + "\n\n")
	b.WriteString(indent(st.Hints(res.Hints, res.Solved)) + "\n")
	return b.String()
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
