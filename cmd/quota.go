package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ccmonitor/internal/cli"
	"github.com/theirongolddev/ccmonitor/internal/quota"
)

var flagToken string

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show plan usage windows from the OAuth usage endpoint",
	RunE:  runQuota,
}

func init() {
	quotaCmd.Flags().StringVar(&flagToken, "token", "", "OAuth token (default: auto-discover)")
	rootCmd.AddCommand(quotaCmd)
}

func runQuota(_ *cobra.Command, _ []string) error {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Fetching plan usage...\n")
	}

	cfg := loadConfig()
	client := quota.NewClient(cfg.Quota.BaseURL, flagToken, cfg.Quota.OAuthToken)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	usage := client.Fetch(ctx)

	if !usage.Available() {
		if usage.Err != "" {
			return errors.New(usage.Err)
		}
		return errors.New("no usage data returned")
	}

	now := time.Now()

	fmt.Println()
	fmt.Println(cli.RenderTitle("PLAN USAGE"))
	fmt.Println()

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
		Title:   "Windows",
		Headers: []string{"Window", "Used", "Resets"},
		Rows:    rows,
	}))

	if usage.Err != "" {
		fmt.Printf("  %s\n\n", cli.Muted(usage.Err))
	}

	return nil
}
