package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ccmonitor/internal/tui/theme"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a single-row block-character chart, scaled to
// the max value. Values beyond width keep only the most recent entries.
func Sparkline(values []int64, width int) string {
	t := theme.Active

	if len(values) > width {
		values = values[len(values)-width:]
	}
	if len(values) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("no data")
	}

	var max int64
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	out := make([]rune, len(values))
	for i, v := range values {
		if max == 0 {
			out[i] = sparkRunes[0]
			continue
		}
		idx := int(float64(v) / float64(max) * float64(len(sparkRunes)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		out[i] = sparkRunes[idx]
	}

	return lipgloss.NewStyle().Foreground(t.Accent).Render(string(out))
}
