package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// configSearchPaths lists config directories, lowest precedence first.
func configSearchPaths() []string {
	paths := []string{filepath.Join("/etc", AppName)}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", AppName))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd)
	}
	return paths
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range configSearchPaths() {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("catalog.endpoint", c.Catalog.Endpoint)
	v.SetDefault("catalog.page_size", c.Catalog.PageSize)
	v.SetDefault("catalog.timeout", c.Catalog.Timeout)
	v.SetDefault("catalog.cache_size", c.Catalog.CacheSize)
	v.SetDefault("catalog.rate_limit", c.Catalog.RateLimit)
	v.SetDefault("catalog.rate_burst", c.Catalog.RateBurst)
	v.SetDefault("search.debounce", c.Search.Debounce)
	v.SetDefault("store.driver", c.Store.Driver)
	v.SetDefault("store.path", c.Store.Path)
	v.SetDefault("notifications.enabled", c.Notifications.Enabled)
	v.SetDefault("ui.theme", c.UI.Theme)
	v.SetDefault("ui.show_type_filter", c.UI.ShowTypeFilter)
	v.SetDefault("ui.use_global_store", c.UI.UseGlobalStore)
	v.SetDefault("ui.animate_cards", c.UI.AnimateCards)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)
	v.SetDefault("log.file", c.Log.File)
	v.SetDefault("log.max_size_mb", c.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", c.Log.MaxBackups)
	v.SetDefault("log.max_age_days", c.Log.MaxAgeDays)
}

// Load reads configuration. Precedence, highest first: POKEDEX_* environment
// variables (including those from a .env file in the working directory), the
// config file, defaults. An explicit cfgFile must exist.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := newViper()
	setDefaults(v, Default())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
