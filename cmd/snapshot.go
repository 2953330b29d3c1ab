package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ccmonitor/internal/cli"
	"github.com/theirongolddev/ccmonitor/internal/config"
	"github.com/theirongolddev/ccmonitor/internal/pipeline"
	"github.com/theirongolddev/ccmonitor/internal/quota"
	"github.com/theirongolddev/ccmonitor/internal/source"
)

var flagNoQuota bool

var snapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Aliases: []string{"snap"},
	Short:   "Print a one-shot usage report and exit",
	RunE:    runSnapshot,
}

func init() {
	snapshotCmd.Flags().BoolVar(&flagNoQuota, "no-quota", false, "Skip the plan usage fetch")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	claudeDir := resolveClaudeDir(cfg)
	sessions := loadData(claudeDir)

	now := time.Now()
	summary := pipeline.Summarize(sessions, now)

	models := make([]string, 0, len(summary.ModelsUsed))
	for _, m := range pipeline.SortedModels(summary) {
		models = append(models, cli.ShortModel(m))
	}
	modelList := strings.Join(models, ", ")
	if modelList == "" {
		modelList = "-"
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CLAUDE CODE USAGE"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Totals",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Sessions", cli.FormatNumber(int64(summary.TotalSessions))},
			{"Active (last hour)", cli.FormatNumber(int64(summary.ActiveSessions))},
			{"Input Tokens", cli.FormatTokens(summary.TotalInputTokens)},
			{"Output Tokens", cli.FormatTokens(summary.TotalOutputTokens)},
			{"Cache Write Tokens", cli.FormatTokens(summary.TotalCacheCreationTokens)},
			{"Cache Read Tokens", cli.FormatTokens(summary.TotalCacheReadTokens)},
			{"Messages", cli.FormatNumber(int64(summary.TotalMessages))},
			{"Models", modelList},
			{"Estimated Cost", cli.FormatCost(summary.TotalCostUSD)},
		},
	}))

	if len(sessions) > 0 {
		rows := make([][]string, 0, len(sessions))
		for _, s := range sessions {
			active := ""
			if now.Sub(s.FileMtime) < time.Hour {
				active = "●"
			}
			rows = append(rows, []string{
				active,
				truncate(s.SessionID, 12),
				truncate(source.PrettyProjectPath(s.ProjectPath), 30),
				cli.ShortModel(s.Model),
				cli.FormatTokens(s.TotalTokens()),
				cli.FormatNumber(int64(s.MessageCount)),
				cli.FormatPercent(s.ContextUsagePct()),
				cli.FormatCost(s.EstimatedCost()),
			})
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Sessions",
			Headers: []string{"", "Session", "Project", "Model", "Tokens", "Msgs", "Ctx", "Cost"},
			Rows:    rows,
		}))
	}

	if !flagNoQuota {
		printPlanUsage(now, cfg.Quota)
	}

	return nil
}

func printPlanUsage(now time.Time, qc config.QuotaConfig) {
	client := quota.NewClient(qc.BaseURL, "", qc.OAuthToken)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	usage := client.Fetch(ctx)
	if !usage.Available() {
		if usage.Err != "" {
			fmt.Printf("  %s\n\n", cli.Muted(usage.Err))
		}
		return
	}

	rows := make([][]string, 0, 4)
	for _, w := range usage.Windows() {
		pct := w.Utilization()
		rows = append(rows, []string{
			w.Label,
			cli.UtilizationStyle(pct).Render(cli.FormatPercent(pct)),
			quota.FormatResetTime(w.ResetsAt, now),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Plan Usage",
		Headers: []string{"Window", "Used", "Resets"},
		Rows:    rows,
	}))

	if usage.Err != "" {
		fmt.Printf("  %s\n\n", cli.Muted(usage.Err))
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
