package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ShayCichocki/todolist/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify todolist configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/todolist/config.yaml
Project-specific overrides can be placed in .todolist.yaml`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		out := cmd.OutOrStdout()
		switch len(args) {
		case 0:
			return displayAllConfig(out, cfg)
		case 1:
			value, err := getConfigValue(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, value)
			return nil
		default:
			return setConfigKey(out, cfg, config.GetUserConfigPath(), args[0], args[1])
		}
	},
}

// configKeys lists every settable key in display order.
var configKeys = []string{
	"storage.driver",
	"storage.data_dir",
	"persist.queue_size",
	"persist.drain_timeout",
	"log.level",
	"log.format",
	"log.file",
	"tui.skip_landing",
	"tui.alt_screen",
}

// displayAllConfig prints all configuration values.
func displayAllConfig(out io.Writer, cfg *config.Config) error {
	key := color.New(color.FgCyan)
	for _, k := range configKeys {
		value, err := getConfigValue(cfg, k)
		if err != nil {
			return err
		}
		key.Fprintf(out, "%s", k)
		fmt.Fprintf(out, ": %s\n", value)
	}
	return nil
}

// setConfigKey checks value against the effective config cfg, then writes only
// that key to the config file at path.
func setConfigKey(out io.Writer, cfg *config.Config, path, key, value string) error {
	if err := setConfigValue(cfg, key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SetKey(path, key, scalar(value)); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(out, "Set %s = %s\n", key, value)
	return nil
}

// scalar decodes value as a YAML scalar so booleans and numbers are written
// unquoted. Anything else is kept as the string given.
func scalar(value string) any {
	var v any
	if err := yaml.Unmarshal([]byte(value), &v); err != nil {
		return value
	}
	switch v.(type) {
	case bool, int, float64:
		return v
	default:
		return value
	}
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "storage.driver":
		return cfg.Storage.Driver, nil
	case "storage.data_dir":
		return cfg.DataDir(), nil
	case "persist.queue_size":
		return strconv.Itoa(cfg.Persist.QueueSize), nil
	case "persist.drain_timeout":
		return cfg.Persist.DrainTimeout.String(), nil
	case "log.level":
		return cfg.Log.Level, nil
	case "log.format":
		return cfg.Log.Format, nil
	case "log.file":
		return cfg.LogPath(), nil
	case "tui.skip_landing":
		return strconv.FormatBool(cfg.TUI.SkipLanding), nil
	case "tui.alt_screen":
		return strconv.FormatBool(cfg.TUI.AltScreen), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "storage.driver":
		cfg.Storage.Driver = value
	case "storage.data_dir":
		cfg.Storage.DataDir = value
	case "persist.queue_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for persist.queue_size: %w", err)
		}
		cfg.Persist.QueueSize = n
	case "persist.drain_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for persist.drain_timeout: %w", err)
		}
		cfg.Persist.DrainTimeout = d
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	case "log.file":
		cfg.Log.File = value
	case "tui.skip_landing":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for tui.skip_landing: %w", err)
		}
		cfg.TUI.SkipLanding = b
	case "tui.alt_screen":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for tui.alt_screen: %w", err)
		}
		cfg.TUI.AltScreen = b
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
