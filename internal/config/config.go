// Package config handles configuration loading for todolist.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverSQLite  = "sqlite"
	DriverSQLite3 = "sqlite3"
	DriverFile    = "file"
)

// Drivers lists the accepted storage drivers.
var Drivers = []string{DriverSQLite, DriverSQLite3, DriverFile}

// EnvPrefix prefixes environment overrides, e.g. TODOLIST_STORAGE_DRIVER.
const EnvPrefix = "TODOLIST"

// ProjectConfigName is the per-project override file.
const ProjectConfigName = ".todolist.yaml"

// Config holds all configuration for todolist.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Persist PersistConfig `mapstructure:"persist"`
	Log     LogConfig     `mapstructure:"log"`
	TUI     TUIConfig     `mapstructure:"tui"`
}

// StorageConfig selects where the lists are kept.
type StorageConfig struct {
	// Driver is one of sqlite, sqlite3, file.
	Driver string `mapstructure:"driver"`
	// DataDir holds the database or list files. Empty means the XDG data dir.
	DataDir string `mapstructure:"data_dir"`
}

// PersistConfig tunes the persistence writer.
type PersistConfig struct {
	QueueSize    int           `mapstructure:"queue_size"`
	DrainTimeout time.Duration `mapstructure:"drain_timeout"`
}

// LogConfig holds diagnostic log settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File is the log file. Empty means <data_dir>/todolist.log.
	File string `mapstructure:"file"`
}

// TUIConfig holds TUI display settings.
type TUIConfig struct {
	SkipLanding bool `mapstructure:"skip_landing"`
	AltScreen   bool `mapstructure:"alt_screen"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (TODOLIST_STORAGE_DRIVER, ...)
// 2. Project config (.todolist.yaml in current directory or parent)
// 3. User config (~/.config/todolist/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading project config: %w", err)
		}
		if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific file, still honoring
// environment overrides.
func LoadFromPath(path string) (*Config, error) {
	v := newViper()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	return unmarshal(v)
}

// SetKey writes a single key to the config file at path, keeping the other
// settings already in that file. Defaults, project overrides and environment
// values are never written.
func SetKey(path, key string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config from %s: %w", path, err)
		}
	}

	v.Set(strings.ToLower(key), value)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the settings can be used.
func (c *Config) Validate() error {
	if !slices.Contains(Drivers, c.Storage.Driver) {
		return fmt.Errorf("unknown storage driver %q (want one of %s)", c.Storage.Driver, strings.Join(Drivers, ", "))
	}
	if c.Persist.QueueSize < 1 {
		return fmt.Errorf("persist.queue_size must be positive, got %d", c.Persist.QueueSize)
	}
	if c.Persist.DrainTimeout <= 0 {
		return fmt.Errorf("persist.drain_timeout must be positive, got %s", c.Persist.DrainTimeout)
	}
	return nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
		},
		Persist: PersistConfig{
			QueueSize:    64,
			DrainTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		TUI: TUIConfig{
			AltScreen: true,
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Storage.DataDir = expandPath(cfg.Storage.DataDir)
	cfg.Log.File = expandPath(cfg.Log.File)
	return cfg, nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.data_dir", d.Storage.DataDir)

	v.SetDefault("persist.queue_size", d.Persist.QueueSize)
	v.SetDefault("persist.drain_timeout", d.Persist.DrainTimeout.String())

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("tui.skip_landing", d.TUI.SkipLanding)
	v.SetDefault("tui.alt_screen", d.TUI.AltScreen)
}

// getUserConfigDir returns the XDG config directory for todolist.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "todolist")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "todolist")
	}
	return filepath.Join(home, ".config", "todolist")
}

// findProjectConfig searches for .todolist.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ProjectConfigName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
