package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/ccmonitor/internal/config"
	"github.com/theirongolddev/ccmonitor/internal/tui/theme"
)

// setupValues holds first-run form answers before they are written to config.
type setupValues struct {
	claudeDir  string
	refreshSec string
	themeName  string
	useCache   bool
}

func newSetupForm(claudeDir string, vals *setupValues) *huh.Form {
	defaults := config.DefaultConfig()

	vals.claudeDir = claudeDir
	vals.refreshSec = strconv.FormatFloat(defaults.General.RefreshIntervalSec, 'f', -1, 64)
	vals.themeName = defaults.Appearance.Theme
	vals.useCache = defaults.General.UseCache

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, th := range theme.All {
		themeOpts[i] = huh.NewOption(th.Name, th.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Claude data directory").
				Description("Where Claude Code writes session logs.").
				Value(&vals.claudeDir),

			huh.NewInput().
				Title("Refresh interval (seconds)").
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("enter a positive number")
					}
					return nil
				}).
				Value(&vals.refreshSec),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.themeName),

			huh.NewConfirm().
				Title("Cache parsed sessions?").
				Description("Speeds up startup by skipping unchanged log files.").
				Value(&vals.useCache),
		).Title("Welcome to ccmonitor"),
	)
}

func (a *App) saveSetupConfig() error {
	cfg := loadConfigOrDefault()

	if dir := strings.TrimSpace(a.setupVals.claudeDir); dir != "" {
		cfg.General.ClaudeDir = dir
		a.claudeDir = dir
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(a.setupVals.refreshSec), 64); err == nil && v > 0 {
		cfg.General.RefreshIntervalSec = v
	}

	cfg.Appearance.Theme = a.setupVals.themeName
	theme.SetActive(cfg.Appearance.Theme)

	cfg.General.UseCache = a.setupVals.useCache

	return config.Save(cfg)
}
