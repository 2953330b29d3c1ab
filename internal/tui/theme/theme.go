// Package theme defines color themes for the ccmonitor dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color
	TextDim    lipgloss.Color
	TextMuted  lipgloss.Color
	Text       lipgloss.Color
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
}

// Dark is the default theme.
var Dark = Theme{
	Name:       "ccmonitor-dark",
	Background: lipgloss.Color("#0D1117"),
	Surface:    lipgloss.Color("#161B22"),
	Border:     lipgloss.Color("#30363D"),
	TextDim:    lipgloss.Color("#484F58"),
	TextMuted:  lipgloss.Color("#8B949E"),
	Text:       lipgloss.Color("#F8F8F2"),
	Primary:    lipgloss.Color("#00D4AA"),
	Secondary:  lipgloss.Color("#7B61FF"),
	Accent:     lipgloss.Color("#FF6AC1"),
	Warning:    lipgloss.Color("#FFB86C"),
	Error:      lipgloss.Color("#FF5555"),
	Success:    lipgloss.Color("#50FA7B"),
}

// Light is the alternative theme for bright terminals.
var Light = Theme{
	Name:       "ccmonitor-light",
	Background: lipgloss.Color("#FFFFFF"),
	Surface:    lipgloss.Color("#F6F8FA"),
	Border:     lipgloss.Color("#D0D7DE"),
	TextDim:    lipgloss.Color("#8C959F"),
	TextMuted:  lipgloss.Color("#57606A"),
	Text:       lipgloss.Color("#1F2328"),
	Primary:    lipgloss.Color("#0969DA"),
	Secondary:  lipgloss.Color("#6639BA"),
	Accent:     lipgloss.Color("#CF222E"),
	Warning:    lipgloss.Color("#BF8700"),
	Error:      lipgloss.Color("#CF222E"),
	Success:    lipgloss.Color("#1A7F37"),
}

// All lists the available themes.
var All = []Theme{Dark, Light}

// Active is the currently selected theme.
var Active = Dark

// SetActive selects a theme by name, keeping the current one if unknown.
func SetActive(name string) {
	for _, t := range All {
		if t.Name == name {
			Active = t
			return
		}
	}
}
