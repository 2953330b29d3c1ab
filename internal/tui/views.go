package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ccmonitor/internal/cli"
	"github.com/theirongolddev/ccmonitor/internal/model"
	"github.com/theirongolddev/ccmonitor/internal/pipeline"
	"github.com/theirongolddev/ccmonitor/internal/quota"
	"github.com/theirongolddev/ccmonitor/internal/source"
	"github.com/theirongolddev/ccmonitor/internal/tui/components"
	"github.com/theirongolddev/ccmonitor/internal/tui/theme"
)

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  ccmonitor needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(msg, a.height)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	card := cardStyle.Render(
		titleStyle.Render("◉ ccmonitor") + "\n\n" +
			a.spinner.View() + dimStyle.Render(" Scanning session logs..."),
	)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	bindings := []struct{ key, desc string }{
		{"j k / ↓ ↑", "Select session"},
		{"g G", "Jump to first / last"},
		{"/", "Filter sessions"},
		{"Esc", "Clear filter"},
		{"r", "Reload session data"},
		{"u", "Refetch plan usage"},
		{"t", "Cycle theme"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-12s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewMain() string {
	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderSummary())
	b.WriteString("\n")
	b.WriteString(a.renderPlanUsage())
	b.WriteString("\n")
	b.WriteString(a.renderSessionList())
	b.WriteString("\n")
	b.WriteString(a.renderDetail())
	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())

	out := b.String()
	return padHeight(truncateHeight(out, a.height), a.height)
}

func (a App) renderHeader() string {
	t := theme.Active

	title := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render("◉ ccmonitor")
	dir := lipgloss.NewStyle().Foreground(t.TextDim).Render("  " + a.claudeDir)

	indicator := ""
	if a.refreshing {
		indicator = lipgloss.NewStyle().Foreground(t.Warning).Render("  ⟳")
	}
	if a.filterQuery != "" {
		indicator += lipgloss.NewStyle().Foreground(t.Secondary).
			Render(fmt.Sprintf("  filter: %q", a.filterQuery))
	}

	return title + dir + indicator
}

func (a App) renderSummary() string {
	t := theme.Active
	s := a.summary

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valStyle := lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	costStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	row := strings.Join([]string{
		labelStyle.Render("Sessions ") + valStyle.Render(fmt.Sprintf("%d", s.TotalSessions)),
		labelStyle.Render("Active ") + valStyle.Render(fmt.Sprintf("%d", s.ActiveSessions)),
		labelStyle.Render("Tokens ") + valStyle.Render(cli.FormatTokens(s.TotalTokens())),
		labelStyle.Render("Messages ") + valStyle.Render(cli.FormatNumber(int64(s.TotalMessages))),
		labelStyle.Render("Cost ") + costStyle.Render(cli.FormatCost(s.TotalCostUSD)),
	}, lipgloss.NewStyle().Foreground(t.Border).Render("  │  "))

	models := pipeline.SortedModels(s)
	short := make([]string, len(models))
	for i, m := range models {
		short[i] = cli.ShortModel(m)
	}
	modelRow := labelStyle.Render("Models ") +
		lipgloss.NewStyle().Foreground(t.TextDim).Render(strings.Join(short, ", "))

	return panel("Usage", row+"\n"+modelRow, a.width)
}

func (a App) renderPlanUsage() string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim)

	if a.planUsage == nil {
		body := dim.Render("fetching plan usage...")
		if !a.quotaFetching {
			body = dim.Render("plan usage unavailable")
		}
		return panel("Plan Usage", body, a.width)
	}

	if !a.planUsage.Available() {
		msg := a.planUsage.Err
		if msg == "" {
			msg = "no usage data returned"
		}
		return panel("Plan Usage", lipgloss.NewStyle().Foreground(t.Warning).Render(msg), a.width)
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	now := time.Now()

	var lines []string
	for _, w := range a.planUsage.Windows() {
		pct := w.Utilization()
		reset := formatResetSuffix(w.ResetsAt, now)
		lines = append(lines,
			labelStyle.Render(fmt.Sprintf("%-20s", w.Label))+" "+
				components.Gauge(pct, 40)+
				dim.Render(reset))
	}
	if a.planUsage.Err != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Warning).Render(a.planUsage.Err))
	}

	return panel("Plan Usage", strings.Join(lines, "\n"), a.width)
}

func (a App) renderSessionList() string {
	t := theme.Active
	visible := a.visibleSessions()

	if len(visible) == 0 {
		return panel("Sessions",
			lipgloss.NewStyle().Foreground(t.TextDim).Render("no sessions found"), a.width)
	}

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.Text)
	selStyle := lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent).Bold(true)
	activeStyle := lipgloss.NewStyle().Foreground(t.Success)
	idleStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("   %-10s %-28s %-16s %8s %8s %9s %6s",
		"SESSION", "PROJECT", "MODEL", "TOKENS", "MSGS", "COST", "CTX%")))
	b.WriteString("\n")

	if a.filtering {
		b.WriteString("  / " + a.filterInput.View() + "\n")
	}

	now := time.Now()
	maxRows := a.sessionListRows()

	start := 0
	if a.cursor >= maxRows {
		start = a.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(visible) {
		end = len(visible)
	}

	for i := start; i < end; i++ {
		s := visible[i]

		dot := idleStyle.Render("·")
		if now.Sub(s.FileMtime) < time.Hour {
			dot = activeStyle.Render("●")
		}

		line := fmt.Sprintf("%-10s %-28s %-16s %8s %8d %9s %5.1f%%",
			truncStr(s.SessionID, 10),
			truncStr(source.PrettyProjectPath(s.ProjectPath), 28),
			truncStr(cli.ShortModel(s.Model), 16),
			cli.FormatTokens(s.TotalTokens()),
			s.MessageCount,
			cli.FormatCost(s.EstimatedCost()),
			s.ContextUsagePct(),
		)

		if i == a.cursor {
			b.WriteString(" " + dot + selStyle.Render(" "+line))
		} else {
			b.WriteString(" " + dot + rowStyle.Render(" "+line))
		}
		b.WriteString("\n")
	}

	title := fmt.Sprintf("Sessions (%d)", len(visible))
	return panel(title, strings.TrimRight(b.String(), "\n"), a.width)
}

func (a App) renderDetail() string {
	t := theme.Active

	sel := a.selectedSession()
	if sel == nil {
		return panel("Session",
			lipgloss.NewStyle().Foreground(t.TextDim).Render("no session selected"), a.width)
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valStyle := lipgloss.NewStyle().Foreground(t.Text)
	dim := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder

	b.WriteString(labelStyle.Render("Context  "))
	b.WriteString(components.Gauge(sel.ContextUsagePct(), 44))
	b.WriteString(dim.Render(fmt.Sprintf("  %s / %s",
		cli.FormatTokens(sel.LatestContextUsed),
		cli.FormatTokens(sel.ContextWindowSize))))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Tokens   "))
	b.WriteString(valStyle.Render(fmt.Sprintf("in %s  out %s  cache-w %s  cache-r %s",
		cli.FormatTokens(sel.TotalInputTokens),
		cli.FormatTokens(sel.TotalOutputTokens),
		cli.FormatTokens(sel.TotalCacheCreationTokens),
		cli.FormatTokens(sel.TotalCacheReadTokens))))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Activity "))
	b.WriteString(components.Sparkline(recentOutputTokens(sel.Messages, 48), 48))
	b.WriteString(dim.Render(fmt.Sprintf("  %.0f tok/min", sel.TokensPerMinute())))
	b.WriteString("\n")

	rw := pipeline.EstimateRate(sel.Messages, time.Now(), a.cfg.Rate)
	b.WriteString(components.RateBar("Requests", rw.RequestsPct,
		fmt.Sprintf("%d/min", rw.Requests), 8, 24))
	b.WriteString("\n")
	b.WriteString(components.RateBar("Input", rw.InputPct,
		cli.FormatTokens(rw.InputTokens)+" tok", 8, 24))
	b.WriteString("\n")
	b.WriteString(components.RateBar("Output", rw.OutputPct,
		cli.FormatTokens(rw.OutputTokens)+" tok", 8, 24))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Rate     ") + rateStatus(rw))

	title := fmt.Sprintf("Session %s", truncStr(sel.SessionID, 20))
	return panel(title, b.String(), a.width)
}

func (a App) renderStatusBar() string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim)

	return dim.Render(fmt.Sprintf(
		" refresh %.1fs · load %.0fms · j/k select · / filter · ? help · q quit",
		a.refreshInterval.Seconds(), float64(a.loadTime.Milliseconds())))
}

// sessionListRows bounds the visible session rows so the fixed panels around
// the list still fit on screen.
func (a App) sessionListRows() int {
	rows := a.height - 24
	if rows < 3 {
		rows = 3
	}
	if rows > 15 {
		rows = 15
	}
	return rows
}

// ─── Helpers ────────────────────────────────────────────────────

func panel(title, body string, width int) string {
	t := theme.Active

	w := width - 4
	if w < 40 {
		w = 40
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(w).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	return titleStyle.Render(" "+title) + "\n" + style.Render(body)
}

// rateStatus maps the worst rate utilization to a throttle-risk label.
func rateStatus(rw model.RateWindow) string {
	t := theme.Active
	pct := rw.MaxPct()
	switch {
	case pct >= 80:
		return lipgloss.NewStyle().Foreground(t.Error).Bold(true).Render("NEAR LIMIT")
	case pct >= 50:
		return lipgloss.NewStyle().Foreground(t.Warning).Render("Moderate usage")
	default:
		return lipgloss.NewStyle().Foreground(t.Success).Render("Within limits")
	}
}

func recentOutputTokens(messages []model.MessageStat, n int) []int64 {
	if len(messages) > n {
		messages = messages[len(messages)-n:]
	}
	out := make([]int64, len(messages))
	for i, m := range messages {
		out[i] = m.OutputTokens
	}
	return out
}

func formatResetSuffix(resetsAt string, now time.Time) string {
	reset := quota.FormatResetTime(resetsAt, now)
	switch reset {
	case "":
		return ""
	case "resetting...":
		return "  " + reset
	default:
		return "  resets in " + reset
	}
}

func filterSessions(sessions []model.SessionRecord, query string) []model.SessionRecord {
	q := strings.ToLower(query)
	var out []model.SessionRecord
	for _, s := range sessions {
		if strings.Contains(strings.ToLower(s.SessionID), q) ||
			strings.Contains(strings.ToLower(source.PrettyProjectPath(s.ProjectPath)), q) ||
			strings.Contains(strings.ToLower(s.Model), q) {
			out = append(out, s)
		}
	}
	return out
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
