// Package config loads pokedex settings from config files, .env and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const AppName = "pokedex"

type Config struct {
	Catalog       CatalogConfig       `mapstructure:"catalog"`
	Search        SearchConfig        `mapstructure:"search"`
	Store         StoreConfig         `mapstructure:"store"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	UI            UIConfig            `mapstructure:"ui"`
	Log           LogConfig           `mapstructure:"log"`
}

type CatalogConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	PageSize  int           `mapstructure:"page_size"`
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheSize int           `mapstructure:"cache_size"`
	RateLimit float64       `mapstructure:"rate_limit"`
	RateBurst int           `mapstructure:"rate_burst"`
}

type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

type StoreConfig struct {
	// Driver is "duckdb" or "sqlite".
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type NotificationsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type UIConfig struct {
	Theme          string `mapstructure:"theme"`
	ShowTypeFilter bool   `mapstructure:"show_type_filter"`
	UseGlobalStore bool   `mapstructure:"use_global_store"`
	AnimateCards   bool   `mapstructure:"animate_cards"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is one of text, json, pretty.
	Format string `mapstructure:"format"`
	// File is the rotating log file. Empty disables file output.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	// Stderr mirrors log output to stderr. Never set while the TUI runs.
	Stderr bool `mapstructure:"-"`
}

// DataDir is where the database and log file live by default.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, "."+AppName)
}

func Default() *Config {
	dir := DataDir()
	return &Config{
		Catalog: CatalogConfig{
			Endpoint:  "https://graphql-pokemon2.vercel.app",
			PageSize:  151,
			Timeout:   10 * time.Second,
			CacheSize: 64,
			RateLimit: 5,
			RateBurst: 5,
		},
		Search: SearchConfig{
			Debounce: 200 * time.Millisecond,
		},
		Store: StoreConfig{
			Driver: "duckdb",
			Path:   filepath.Join(dir, "pokedex.db"),
		},
		Notifications: NotificationsConfig{
			Enabled: true,
		},
		UI: UIConfig{
			Theme:          "light",
			ShowTypeFilter: true,
			UseGlobalStore: true,
			AnimateCards:   true,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			File:       filepath.Join(dir, "pokedex.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Catalog.Endpoint) == "" {
		return fmt.Errorf("catalog.endpoint is required")
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("catalog.page_size must be positive, got %d", c.Catalog.PageSize)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog.timeout must be positive, got %s", c.Catalog.Timeout)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative, got %s", c.Search.Debounce)
	}
	switch c.Store.Driver {
	case "duckdb", "sqlite":
	default:
		return fmt.Errorf("unknown store.driver %q (want duckdb or sqlite)", c.Store.Driver)
	}
	switch c.UI.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("unknown ui.theme %q (want light or dark)", c.UI.Theme)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "pretty", "":
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	return nil
}
