// Package config holds ccmonitor configuration and the model pricing registry.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all ccmonitor configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Quota      QuotaConfig      `toml:"quota"`
	Rate       RateConfig       `toml:"rate"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	ClaudeDir          string  `toml:"claude_dir,omitempty"`
	RefreshIntervalSec float64 `toml:"refresh_interval_sec"`
	UseCache           bool    `toml:"use_cache"`
}

// QuotaConfig holds plan-usage API settings.
type QuotaConfig struct {
	BaseURL    string `toml:"base_url,omitempty"`
	OAuthToken string `toml:"oauth_token,omitempty"`
}

// RateConfig holds the per-minute ceilings used by the rate monitor.
// These vary by API tier; defaults are conservative mid-tier values.
type RateConfig struct {
	RequestsPerMin     int64 `toml:"requests_per_min"`
	InputTokensPerMin  int64 `toml:"input_tokens_per_min"`
	OutputTokensPerMin int64 `toml:"output_tokens_per_min"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			RefreshIntervalSec: 2.0,
			UseCache:           true,
		},
		Rate: RateConfig{
			RequestsPerMin:     50,
			InputTokensPerMin:  40_000,
			OutputTokensPerMin: 8_000,
		},
		Appearance: AppearanceConfig{
			Theme: "ccmonitor-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccmonitor")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ccmonitor")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// ClaudeDir resolves the Claude Code data directory. Priority: explicit
// argument (CLI flag), CCMONITOR_CLAUDE_DIR env var, config file, then the
// well-known candidate list (first existing wins, last candidate if none do).
func ClaudeDir(override string, cfg Config) string {
	if override != "" {
		return override
	}
	if dir := os.Getenv("CCMONITOR_CLAUDE_DIR"); dir != "" {
		return dir
	}
	if cfg.General.ClaudeDir != "" {
		return cfg.General.ClaudeDir
	}

	home, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join(home, ".claude"),
		"/root/.claude",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return candidates[len(candidates)-1]
}
