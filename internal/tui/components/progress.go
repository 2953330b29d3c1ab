// Package components provides reusable widgets for the ccmonitor dashboard.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ccmonitor/internal/tui/theme"
)

// ColorForPct returns green/orange/red based on a 0-100 utilization level.
func ColorForPct(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 80:
		return t.Error
	case pct >= 50:
		return t.Warning
	default:
		return t.Success
	}
}

// Gauge renders a labeled block-character gauge with a percentage readout.
// pct is 0-100.
func Gauge(pct float64, width int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	barW := width - 7 // room for " 100.0%"
	if barW < 4 {
		barW = 4
	}
	filled := int(pct / 100 * float64(barW))
	if filled > barW {
		filled = barW
	}

	color := ColorForPct(pct)
	filledStyle := lipgloss.NewStyle().Foreground(color)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", barW-filled)) +
		pctStyle.Render(fmt.Sprintf(" %5.1f%%", pct))
}

// RateBar renders a labeled rate-limit bar backed by bubbles/progress.
// pct is 0-100; detail is appended dimly after the percentage.
func RateBar(label string, pct float64, detail string, labelW, barW int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	bar := progress.New(
		progress.WithSolidFill(string(ColorForPct(pct))),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(ColorForPct(pct)).Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	out := labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		bar.ViewAs(pct/100) + " " +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct))
	if detail != "" {
		out += "  " + detailStyle.Render(detail)
	}
	return out
}
