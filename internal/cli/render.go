package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette shared by snapshot output.
var (
	ColorBorder = lipgloss.Color("#30363D")
	ColorMuted  = lipgloss.Color("#8B949E")
	ColorText   = lipgloss.Color("#F8F8F2")
	ColorAccent = lipgloss.Color("#00D4AA")
	ColorGreen  = lipgloss.Color("#50FA7B")
	ColorOrange = lipgloss.Color("#FFB86C")
	ColorRed    = lipgloss.Color("#FF5555")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Table is a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	writeRule := func(left, mid, right string) {
		b.WriteString("  ")
		b.WriteString(borderStyle.Render(left))
		for i, w := range widths {
			b.WriteString(borderStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(borderStyle.Render(mid))
			}
		}
		b.WriteString(borderStyle.Render(right))
		b.WriteString("\n")
	}

	writeCells := func(cells []string, style lipgloss.Style) {
		b.WriteString("  ")
		b.WriteString(borderStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(" ")
			b.WriteString(style.Render(cell))
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(" ")
			b.WriteString(borderStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	writeRule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		writeCells(t.Headers, headerStyle)
		writeRule("├", "┼", "┤")
	}
	for _, row := range t.Rows {
		writeCells(row, lipgloss.NewStyle().Foreground(ColorText))
	}
	writeRule("╰", "┴", "╯")

	return b.String()
}

// Muted renders dim helper text.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// UtilizationStyle colors a 0-100 percentage by severity.
func UtilizationStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= 80:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case pct >= 50:
		return lipgloss.NewStyle().Foreground(ColorOrange)
	default:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	}
}
