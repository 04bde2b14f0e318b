package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/san-kum/pidlab/internal/control"
	"github.com/san-kum/pidlab/internal/metrics"
)

// Scorecard renders the PID vs baseline table followed by the verdict.
func (s Styles) Scorecard(sc metrics.Scorecard) string {
	mark := func(win bool) string {
		if win {
			return "✓"
		}
		return "✗"
	}
	wins := []bool{sc.ErrorWin, sc.OvershootWin, sc.SmoothWin}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Subtle).
		Headers("metric", "pid", "baseline", "gain", "").
		Row("tracking error (mae)",
			fmt.Sprintf("%.3f", sc.PID.MeanAbsError),
			fmt.Sprintf("%.3f", sc.Baseline.MeanAbsError),
			fmt.Sprintf("%+.1f%%", sc.ErrorGain),
			mark(sc.ErrorWin)).
		Row("overshoot",
			fmt.Sprintf("%.3f", sc.PID.MaxOvershoot),
			fmt.Sprintf("%.3f", sc.Baseline.MaxOvershoot),
			fmt.Sprintf("%+.3f", sc.OvershootGain),
			mark(sc.OvershootWin)).
		Row("smoothness (tv)",
			fmt.Sprintf("%.1f", sc.PID.TotalVariation),
			fmt.Sprintf("%.1f", sc.Baseline.TotalVariation),
			fmt.Sprintf("%+.1f%%", sc.SmoothGain),
			mark(sc.SmoothWin)).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Title.Padding(0, 1)
			case col == 4 && row >= 0 && row < len(wins):
				if wins[row] {
					return s.Win.Padding(0, 1)
				}
				return s.Lose.Padding(0, 1)
			case col == 0:
				return s.Label.Padding(0, 1)
			}
			return st
		})

	verdict := sc.Verdict()
	line := fmt.Sprintf("%s %s  %s",
		s.WinBar(sc.Wins(), 3),
		s.Value.Render(strings.ToUpper(string(verdict))),
		s.Subtle.Render(verdict.Message()))

	return t.String() + "\n" + line
}

// SummaryTable renders every metric for each named run.
func (s Styles) SummaryTable(names []string, sums []metrics.Summary) string {
	headers := append([]string{"run"}, metricColumns...)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Subtle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Title.Padding(0, 1)
			}
			if col == 0 {
				return s.Label.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
		})

	for i, sum := range sums {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		t.Row(name,
			fmt.Sprintf("%.2f", sum.SettlingTime),
			fmt.Sprintf("%.3f", sum.MaxOvershoot),
			fmt.Sprintf("%.3f", sum.FinalError),
			fmt.Sprintf("%d", sum.Oscillations),
			fmt.Sprintf("%.3f", sum.MeanAbsError),
			fmt.Sprintf("%.1f", sum.TotalVariation),
		)
	}
	return t.String()
}

var metricColumns = []string{"settle(s)", "overshoot", "final err", "osc", "mae", "tv"}

// Gains renders "Kp=2.00  Ki=0.15  Kd=0.00" with the selected gain
// highlighted. sel is "P", "I", "D" or empty.
func (s Styles) Gains(g control.Gains, sel string) string {
	part := func(name string, v float64) string {
		text := fmt.Sprintf("K%s=%.2f", strings.ToLower(name), v)
		if strings.EqualFold(sel, name) {
			return s.Value.Render(text)
		}
		return s.Label.Render(text)
	}
	return part("P", g.Kp) + "  " + part("I", g.Ki) + "  " + part("D", g.Kd)
}

// Hints renders coaching hints as a bulleted list, or the success banner
// when the tuning is solved.
func (s Styles) Hints(hints []string, solved bool) string {
	if solved {
		return s.Win.Render("★ excellent PID! all three terms working together") + "\n" +
			s.Subtle.Render("  try the tune scenarios next")
	}
	if len(hints) == 0 {
		return s.Win.Render("• looks good")
	}
	var b strings.Builder
	for i, h := range hints {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Warn.Render("• " + h))
	}
	return b.String()
}
