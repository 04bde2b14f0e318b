package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Theme  Theme
	Title  lipgloss.Style
	Panel  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Win    lipgloss.Style
	Lose   lipgloss.Style
	Warn   lipgloss.Style
	Subtle lipgloss.Style
	Key    lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Label:  lipgloss.NewStyle().Foreground(t.Muted),
		Value:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Win:    lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Lose:   lipgloss.NewStyle().Foreground(t.Error),
		Warn:   lipgloss.NewStyle().Foreground(t.Warning),
		Subtle: lipgloss.NewStyle().Foreground(t.Muted),
		Key: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
	}
}

// SparklineChart renders a mini sparkline from values
func (s Styles) SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	// Sample to fit width
	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		result.WriteString(s.Value.Render(string(chars[idx])))
	}

	return result.String()
}

// WinBar renders wins out of total as a filled bar.
func (s Styles) WinBar(wins, total int) string {
	if total <= 0 {
		return ""
	}
	wins = min(max(wins, 0), total)
	bar := strings.Repeat("█", wins) + strings.Repeat("░", total-wins)

	switch {
	case wins == total:
		return s.Win.Render(bar)
	case wins*2 >= total:
		return s.Warn.Render(bar)
	}
	return s.Lose.Render(bar)
}

// Separator is a decorative horizontal rule
func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}
