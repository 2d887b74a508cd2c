package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig locates the catalog database.
type DatabaseConfig struct {
	// Path is the SQLite file holding problems, tags and their links.
	Path string `mapstructure:"path" yaml:"path"`
}

// SearchConfig tunes the incremental tag search.
type SearchConfig struct {
	// DebounceMs is how long typing must pause before a query runs.
	DebounceMs int `mapstructure:"debounce_ms" yaml:"debounce_ms"`

	// Mode is either "contains" or "prefix".
	Mode string `mapstructure:"mode" yaml:"mode"`

	// QueryTimeoutMs bounds a single search query.
	QueryTimeoutMs int `mapstructure:"query_timeout_ms" yaml:"query_timeout_ms"`
}

// DisplayConfig holds UI preferences.
type DisplayConfig struct {
	StatusTimeoutSec int `mapstructure:"status_timeout_sec" yaml:"status_timeout_sec"`
	HintTimeoutSec   int `mapstructure:"hint_timeout_sec" yaml:"hint_timeout_sec"`
}

// LogConfig controls the slog logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`

	// File receives log output while the TUI owns the terminal.
	File string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Search   SearchConfig   `mapstructure:"search" yaml:"search"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// Debounce returns the configured debounce interval.
func (c SearchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// QueryTimeout returns the configured per-query timeout.
func (c SearchConfig) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutMs) * time.Millisecond
}

// MatchMode returns the configured mode as a MatchMode.
func (c SearchConfig) MatchMode() MatchMode {
	return MatchMode(strings.ToLower(c.Mode))
}

// StatusTimeout is how long transient status messages stay visible.
func (c DisplayConfig) StatusTimeout() time.Duration {
	return time.Duration(c.StatusTimeoutSec) * time.Second
}

// HintTimeout is how long the startup hint stays visible.
func (c DisplayConfig) HintTimeout() time.Duration {
	return time.Duration(c.HintTimeoutSec) * time.Second
}

// ConfigDir returns ~/.config/probcat, falling back to the working directory.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "probcat")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/probcat/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{
			Path: filepath.Join(ConfigDir(), "catalog.db"),
		},
		Search: SearchConfig{
			DebounceMs:     500,
			Mode:           string(MatchContains),
			QueryTimeoutMs: 2000,
		},
		Display: DisplayConfig{
			StatusTimeoutSec: 2,
			HintTimeoutSec:   5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(ConfigDir(), "probcat.log"),
		},
	}
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return defaultAppConfig()
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file yields the defaults. PROBCAT_* environment variables
// override both (e.g. PROBCAT_SEARCH_MODE=prefix).
func LoadConfig(path string) (*AppConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("probcat")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("search.debounce_ms", def.Search.DebounceMs)
	v.SetDefault("search.mode", def.Search.Mode)
	v.SetDefault("search.query_timeout_ms", def.Search.QueryTimeoutMs)
	v.SetDefault("display.status_timeout_sec", def.Display.StatusTimeoutSec)
	v.SetDefault("display.hint_timeout_sec", def.Display.HintTimeoutSec)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.file", def.Log.File)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Search.DebounceMs <= 0 {
		return fmt.Errorf("search.debounce_ms must be positive, got %d", c.Search.DebounceMs)
	}
	if !c.Search.MatchMode().Valid() {
		return fmt.Errorf("search.mode must be %q or %q, got %q",
			MatchContains, MatchPrefix, c.Search.Mode)
	}
	if c.Search.QueryTimeoutMs <= 0 {
		return fmt.Errorf("search.query_timeout_ms must be positive, got %d", c.Search.QueryTimeoutMs)
	}
	if c.Display.StatusTimeoutSec <= 0 || c.Display.HintTimeoutSec <= 0 {
		return fmt.Errorf("display timeouts must be positive")
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("search", cfg.Search)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
