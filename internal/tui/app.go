// Package tui provides the interactive Bubble Tea dashboard for ccmonitor.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ccmonitor/internal/config"
	"github.com/theirongolddev/ccmonitor/internal/model"
	"github.com/theirongolddev/ccmonitor/internal/pipeline"
	"github.com/theirongolddev/ccmonitor/internal/quota"
	"github.com/theirongolddev/ccmonitor/internal/store"
	"github.com/theirongolddev/ccmonitor/internal/tui/theme"
	"github.com/theirongolddev/ccmonitor/internal/watch"
)

// DataLoadedMsg is sent when the initial data load finishes.
type DataLoadedMsg struct {
	Sessions []model.SessionRecord
	LoadTime time.Duration
}

// RefreshMsg is sent when a background data refresh completes.
type RefreshMsg struct {
	Sessions []model.SessionRecord
	LoadTime time.Duration
}

// QuotaMsg is sent when a plan usage fetch completes.
type QuotaMsg struct {
	Usage *quota.PlanUsage
}

type tickMsg struct{}

type watchHintMsg struct{}

// quotaRefreshTicks is the number of refresh ticks between plan usage
// fetches. At the default 2s interval this is roughly one fetch a minute.
const quotaRefreshTicks = 30

// App is the root Bubble Tea model.
type App struct {
	// Data
	sessions []model.SessionRecord
	summary  model.UsageSummary
	loaded   bool
	loadTime time.Duration

	// Refresh state
	refreshInterval time.Duration
	refreshing      bool

	// Plan usage from the OAuth endpoint
	planUsage     *quota.PlanUsage
	quotaFetching bool
	quotaTicks    int

	// Selection pinned to a session ID so reordering keeps it stable
	cursor     int
	selectedID string

	// Filter
	filtering   bool
	filterInput textinput.Model
	filterQuery string

	// UI state
	width    int
	height   int
	showHelp bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model

	cfg       config.Config
	claudeDir string
	useCache  bool

	watcher *watch.Watcher
}

const (
	minTerminalWidth = 70
	minRefresh       = 500 * time.Millisecond
)

// loadConfigOrDefault loads config, falling back to defaults on error so
// the dashboard can always start.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new dashboard model.
func NewApp(claudeDirFlag string, refreshOverride float64, useCache bool) App {
	needSetup := !config.Exists()

	cfg := loadConfigOrDefault()
	claudeDir := config.ClaudeDir(claudeDirFlag, cfg)
	theme.SetActive(cfg.Appearance.Theme)

	interval := time.Duration(cfg.General.RefreshIntervalSec * float64(time.Second))
	if refreshOverride > 0 {
		interval = time.Duration(refreshOverride * float64(time.Second))
	}
	if interval < minRefresh {
		interval = 2 * time.Second
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	fi := textinput.New()
	fi.Placeholder = "filter by project or session id"
	fi.CharLimit = 80

	w, _ := watch.New(claudeDir) // nil on error, polling still covers us

	return App{
		claudeDir:       claudeDir,
		cfg:             cfg,
		useCache:        useCache && cfg.General.UseCache,
		refreshInterval: interval,
		needSetup:       needSetup,
		spinner:         sp,
		filterInput:     fi,
		watcher:         w,
		quotaFetching:   true, // Init issues the first fetch
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadDataCmd(a.claudeDir, a.useCache),
		fetchQuotaCmd(a.cfg.Quota),
		a.spinner.Tick,
		tickCmd(a.refreshInterval),
	}
	if a.watcher != nil {
		cmds = append(cmds, waitForHint(a.watcher))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)

	case DataLoadedMsg:
		a.sessions = msg.Sessions
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.recompute()

		if a.needSetup {
			a.setupForm = newSetupForm(a.claudeDir, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case RefreshMsg:
		a.refreshing = false
		if msg.Sessions != nil {
			a.sessions = msg.Sessions
			a.loadTime = msg.LoadTime
			a.recompute()
		}
		return a, nil

	case QuotaMsg:
		a.quotaFetching = false
		a.planUsage = msg.Usage
		return a, nil

	case watchHintMsg:
		cmds := []tea.Cmd{}
		if a.watcher != nil {
			cmds = append(cmds, waitForHint(a.watcher))
		}
		if a.loaded && !a.refreshing {
			a.refreshing = true
			cmds = append(cmds, refreshDataCmd(a.claudeDir, a.useCache))
		}
		return a, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(a.refreshInterval)}

		if a.loaded && !a.refreshing {
			a.refreshing = true
			cmds = append(cmds, refreshDataCmd(a.claudeDir, a.useCache))
		}

		a.quotaTicks++
		if a.quotaTicks >= quotaRefreshTicks && !a.quotaFetching {
			a.quotaTicks = 0
			a.quotaFetching = true
			cmds = append(cmds, fetchQuotaCmd(a.cfg.Quota))
		}

		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		a.closeWatcher()
		return a, tea.Quit
	}

	if !a.loaded {
		return a, nil
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Filter input intercepts all keys while active
	if a.filtering {
		switch key {
		case "enter":
			a.filterQuery = a.filterInput.Value()
			a.filtering = false
			a.cursor = 0
			a.selectedID = ""
			a.recompute()
			return a, nil
		case "esc":
			a.filtering = false
			return a, nil
		}
		var cmd tea.Cmd
		a.filterInput, cmd = a.filterInput.Update(msg)
		return a, cmd
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	visible := a.visibleSessions()

	switch key {
	case "q":
		a.closeWatcher()
		return a, tea.Quit

	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.claudeDir, a.useCache)
		}
		return a, nil

	case "u":
		if !a.quotaFetching {
			a.quotaFetching = true
			return a, fetchQuotaCmd(a.cfg.Quota)
		}
		return a, nil

	case "t":
		a.cycleTheme()
		return a, nil

	case "/":
		a.filtering = true
		a.filterInput.SetValue(a.filterQuery)
		a.filterInput.Focus()
		return a, a.filterInput.Cursor.BlinkCmd()

	case "esc":
		if a.filterQuery != "" {
			a.filterQuery = ""
			a.cursor = 0
			a.selectedID = ""
			a.recompute()
		}
		return a, nil

	case "j", "down":
		if a.cursor < len(visible)-1 {
			a.cursor++
			a.pinSelection(visible)
		}
		return a, nil

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
			a.pinSelection(visible)
		}
		return a, nil

	case "g":
		a.cursor = 0
		a.pinSelection(visible)
		return a, nil

	case "G":
		a.cursor = len(visible) - 1
		if a.cursor < 0 {
			a.cursor = 0
		}
		a.pinSelection(visible)
		return a, nil
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		_ = a.saveSetupConfig()
		a.cfg = loadConfigOrDefault()
		if iv := time.Duration(a.cfg.General.RefreshIntervalSec * float64(time.Second)); iv >= minRefresh {
			a.refreshInterval = iv
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// recompute rebuilds the summary and re-resolves the pinned selection after
// the session list changed. Sessions arrive sorted by mtime descending, so
// a freshly active session can move above the selected row at any refresh.
func (a *App) recompute() {
	a.summary = pipeline.Summarize(a.sessions, time.Now())

	visible := a.visibleSessions()

	if a.selectedID != "" {
		for i, s := range visible {
			if s.SessionID == a.selectedID {
				a.cursor = i
				return
			}
		}
	}
	if a.cursor >= len(visible) {
		a.cursor = len(visible) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	a.pinSelection(visible)
}

func (a *App) pinSelection(visible []model.SessionRecord) {
	if a.cursor >= 0 && a.cursor < len(visible) {
		a.selectedID = visible[a.cursor].SessionID
	} else {
		a.selectedID = ""
	}
}

// visibleSessions applies the filter query to the session list.
func (a App) visibleSessions() []model.SessionRecord {
	if a.filterQuery == "" {
		return a.sessions
	}
	return filterSessions(a.sessions, a.filterQuery)
}

// selectedSession returns the currently selected session, or nil.
func (a App) selectedSession() *model.SessionRecord {
	visible := a.visibleSessions()
	if a.cursor < 0 || a.cursor >= len(visible) {
		return nil
	}
	return &visible[a.cursor]
}

// cycleTheme switches to the next theme and persists the choice best-effort.
func (a *App) cycleTheme() {
	for i, th := range theme.All {
		if th.Name == theme.Active.Name {
			next := theme.All[(i+1)%len(theme.All)]
			theme.SetActive(next.Name)
			a.cfg.Appearance.Theme = next.Name
			_ = config.Save(a.cfg)
			return
		}
	}
}

func (a *App) closeWatcher() {
	if a.watcher != nil {
		_ = a.watcher.Close()
		a.watcher = nil
	}
}

// ─── Commands ───────────────────────────────────────────────────

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func waitForHint(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		_, ok := <-w.Hints
		if !ok {
			return nil
		}
		return watchHintMsg{}
	}
}

func loadSessions(claudeDir string, useCache bool) []model.SessionRecord {
	if useCache {
		cache, err := store.Open(pipeline.CachePath())
		if err == nil {
			cr, loadErr := pipeline.LoadWithCache(claudeDir, cache)
			_ = cache.Close()
			if loadErr == nil {
				return cr.Sessions
			}
		}
	}
	result := pipeline.Load(claudeDir)
	return result.Sessions
}

func loadDataCmd(claudeDir string, useCache bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		sessions := loadSessions(claudeDir, useCache)
		return DataLoadedMsg{Sessions: sessions, LoadTime: time.Since(start)}
	}
}

func refreshDataCmd(claudeDir string, useCache bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		sessions := loadSessions(claudeDir, useCache)
		return RefreshMsg{Sessions: sessions, LoadTime: time.Since(start)}
	}
}

func fetchQuotaCmd(qc config.QuotaConfig) tea.Cmd {
	return func() tea.Msg {
		client := quota.NewClient(qc.BaseURL, "", qc.OAuthToken)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return QuotaMsg{Usage: client.Fetch(ctx)}
	}
}
