package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ccmonitor/internal/cli"
	"github.com/theirongolddev/ccmonitor/internal/source"
)

var flagLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions, newest first",
	RunE:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Max sessions to show (0 = all)")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
	claudeDir := resolveClaudeDir(loadConfig())
	sessions := loadData(claudeDir)

	if len(sessions) == 0 {
		fmt.Println()
		fmt.Println("  No sessions found.")
		fmt.Println()
		return nil
	}

	if flagLimit > 0 && len(sessions) > flagLimit {
		sessions = sessions[:flagLimit]
	}

	now := time.Now()
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		active := ""
		if now.Sub(s.FileMtime) < time.Hour {
			active = "●"
		}
		last := s.LastActivity
		if ts, err := parseDisplayTime(last); err == nil {
			last = ts
		}
		rows = append(rows, []string{
			active,
			truncate(s.SessionID, 12),
			truncate(source.PrettyProjectPath(s.ProjectPath), 30),
			cli.ShortModel(s.Model),
			cli.FormatTokens(s.TotalTokens()),
			cli.FormatPercent(s.ContextUsagePct()),
			cli.FormatCost(s.EstimatedCost()),
			last,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Sessions",
		Headers: []string{"", "Session", "Project", "Model", "Tokens", "Ctx", "Cost", "Last Activity"},
		Rows:    rows,
	}))

	return nil
}

func parseDisplayTime(ts string) (string, error) {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return "", err
	}
	return t.Local().Format("Jan 2 15:04"), nil
}
