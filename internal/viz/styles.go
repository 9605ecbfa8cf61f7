package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func bodyStyle() lipgloss.Style  { return fg(CurrentTheme.Body) }
func titleStyle() lipgloss.Style { return fg(CurrentTheme.Accent).Bold(true) }
func labelStyle() lipgloss.Style { return fg(CurrentTheme.Muted).Width(10) }
func valueStyle() lipgloss.Style { return fg(CurrentTheme.Text) }
func hintStyle() lipgloss.Style  { return fg(CurrentTheme.Muted).Italic(true) }
func eventStyle() lipgloss.Style { return fg(CurrentTheme.Event) }

func statusStyle(paused bool) lipgloss.Style {
	if paused {
		return fg(CurrentTheme.Paused).Bold(true)
	}
	return fg(CurrentTheme.Running).Bold(true)
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#444466")).
	Padding(0, 1)

// Sparkline renders values as a row of block glyphs, sampled to width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(len(values)/width, 1)
	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		idx := int((values[i*step] - lo) / rng * float64(len(chars)-1))
		b.WriteRune(chars[min(max(idx, 0), len(chars)-1)])
	}
	return b.String()
}

func separator(width int) string {
	return fg(CurrentTheme.Muted).Render(strings.Repeat("─", width))
}
