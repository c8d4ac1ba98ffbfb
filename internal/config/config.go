package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Feed    FeedConfig    `mapstructure:"feed"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Journal JournalConfig `mapstructure:"journal"`
}

// APIConfig points at the bank service.
type APIConfig struct {
	Root    string        `mapstructure:"root"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FeedConfig sizes the recent-transactions feed.
type FeedConfig struct {
	Limit int `mapstructure:"limit"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol  string `mapstructure:"currency_symbol"`
	TimestampFormat string `mapstructure:"timestamp_format"`
	Timezone        string `mapstructure:"timezone"`
}

// LogConfig holds log file settings. The terminal belongs to the UI, so
// logs always go to a file.
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// JournalConfig holds the local operation journal settings.
type JournalConfig struct {
	Path    string `mapstructure:"path"`
	Enabled bool   `mapstructure:"enabled"`
}

// Location resolves the configured timezone, falling back to local time.
func (u UIConfig) Location() *time.Location {
	if u.Timezone == "" || strings.EqualFold(u.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Load reads configuration from file and env. Env var overrides use prefix BANKCONSOLE_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("api.root", "http://localhost:3000/api")
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("feed.limit", 20)
	v.SetDefault("ui.currency_symbol", "₹")
	v.SetDefault("ui.timestamp_format", "02/01/2006, 15:04:05")
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "bankconsole", "bankconsole.log"))
	v.SetDefault("journal.path", filepath.Join(home, ".local", "share", "bankconsole", "journal.db"))
	v.SetDefault("journal.enabled", true)

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("BANKCONSOLE_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "bankconsole"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BANKCONSOLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.API.Root = strings.TrimRight(strings.TrimSpace(c.API.Root), "/")
	if c.Feed.Limit <= 0 {
		c.Feed.Limit = 20
	}
	return c, nil
}

// Path returns the config file Save writes to.
func Path() string {
	if path := os.Getenv("BANKCONSOLE_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "bankconsole", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
// The TUI uses it to persist an API root changed at runtime.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.root", cfg.API.Root)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("feed.limit", cfg.Feed.Limit)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.timestamp_format", cfg.UI.TimestampFormat)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)
	v.Set("journal.path", cfg.Journal.Path)
	v.Set("journal.enabled", cfg.Journal.Enabled)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
