package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/todolist/internal/config"
)

var (
	configPath  string
	dataDir     string
	driver      string
	skipLanding bool
)

var rootCmd = &cobra.Command{
	Use:   "todolist",
	Short: "A terminal todo list",
	Long: `todolist keeps a list of things to do and a list of completed tasks.

With no arguments, opens the todo screen. Type an item and press enter to add
it, select items with space, press m to move them to Completed Tasks and d to
delete them. Every change is saved as you make it.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runTUI(cmd.Context(), cfg)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: user and project config)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the lists")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Storage driver: sqlite, sqlite3 or file")
	rootCmd.Flags().BoolVar(&skipLanding, "skip-landing", false, "Open the todo screen directly")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.Storage.DataDir = dataDir
	}
	if flags.Changed("driver") {
		cfg.Storage.Driver = driver
	}
	if flags.Lookup("skip-landing") != nil && flags.Changed("skip-landing") {
		cfg.TUI.SkipLanding = skipLanding
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
