// Package cmd wires up the ccmonitor command line interface.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/ccmonitor/internal/config"
	"github.com/theirongolddev/ccmonitor/internal/model"
	"github.com/theirongolddev/ccmonitor/internal/pipeline"
	"github.com/theirongolddev/ccmonitor/internal/store"
	"github.com/theirongolddev/ccmonitor/internal/tui"
	"github.com/theirongolddev/ccmonitor/internal/tui/theme"
)

var (
	flagClaudeDir string
	flagRefresh   float64
	flagNoCache   bool
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "ccmonitor",
	Short: "Live dashboard for Claude Code session usage",
	Long:  "Monitor Claude Code sessions in real time: tokens, context usage, costs, rate limits, and plan quotas.",
	RunE:  runDashboard,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagClaudeDir, "claude-dir", "d", "", "Claude data directory (default: auto-detect)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.Flags().Float64VarP(&flagRefresh, "refresh", "r", 0, "Refresh interval in seconds (default: from config)")
}

func runDashboard(_ *cobra.Command, _ []string) error {
	// Force TrueColor so background styling always produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(flagClaudeDir, flagRefresh, !flagNoCache)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

// loadConfig reads the config file, quietly falling back to defaults.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// resolveClaudeDir applies the flag > env > config > candidate chain.
func resolveClaudeDir(cfg config.Config) string {
	theme.SetActive(cfg.Appearance.Theme)
	return config.ClaudeDir(flagClaudeDir, cfg)
}

// loadData is the shared loading path used by the one-shot commands.
func loadData(claudeDir string) []model.SessionRecord {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning sessions in %s...\n", claudeDir)
	}

	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err == nil {
			defer cache.Close()
			cr, loadErr := pipeline.LoadWithCache(claudeDir, cache)
			if loadErr == nil {
				if !flagQuiet && cr.TotalFiles > 0 {
					fmt.Fprintf(os.Stderr, "  %d cached + %d reparsed\n", cr.CacheHits, cr.Reparsed)
				}
				return cr.Sessions
			}
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache error, falling back to full parse\n")
			}
		} else if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Cache unavailable, doing full parse\n")
		}
	}

	result := pipeline.Load(claudeDir)
	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "  Parsed %d session files\n", result.TotalFiles)
	}
	return result.Sessions
}
