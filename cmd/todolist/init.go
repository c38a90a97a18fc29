package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ShayCichocki/todolist/internal/config"
)

var (
	initForce  bool
	initDriver string
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Keep a separate todo list for a directory",
	Long: `Initialize a directory with its own todo list.

Writes a .todolist.yaml that points storage at <directory>/.todolist, so
running todolist anywhere below that directory uses those lists instead of
the ones in your data directory.

Examples:
  todolist init                  # Initialize current directory
  todolist init ./myproject      # Initialize specific directory
  todolist init --driver file    # Store the lists as plain JSON files
  todolist init --force          # Overwrite an existing .todolist.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetDir := "."
		if len(args) > 0 {
			targetDir = args[0]
		}
		return runInit(cmd.OutOrStdout(), targetDir)
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing project config")
	initCmd.Flags().StringVar(&initDriver, "driver", config.DriverSQLite, "Storage driver for this directory")
}

func runInit(out io.Writer, targetDir string) error {
	if !slices.Contains(config.Drivers, initDriver) {
		return fmt.Errorf("unknown storage driver %q", initDriver)
	}

	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}
	if err := os.MkdirAll(absPath, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", absPath, err)
	}

	fmt.Fprintf(out, "Initializing todolist in %s...\n\n", absPath)

	configPath := filepath.Join(absPath, config.ProjectConfigName)
	if _, err := os.Stat(configPath); err == nil && !initForce {
		printStatus(out, "⚠", config.ProjectConfigName+" already exists. Use --force to overwrite.", color.FgYellow)
		return nil
	}

	dataDir := filepath.Join(absPath, ".todolist")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	printStatus(out, "✓", "Created .todolist data directory", color.FgGreen)

	if err := createProjectConfig(configPath, dataDir, initDriver); err != nil {
		return fmt.Errorf("writing %s: %w", config.ProjectConfigName, err)
	}
	printStatus(out, "✓", "Created "+config.ProjectConfigName, color.FgGreen)

	fmt.Fprintln(out, "\nRun todolist from this directory to open its list.")
	return nil
}

// createProjectConfig writes the project config pointing storage at dataDir.
func createProjectConfig(path, dataDir, driver string) error {
	body, err := yaml.Marshal(map[string]any{
		"storage": map[string]any{
			"driver":   driver,
			"data_dir": dataDir,
		},
	})
	if err != nil {
		return err
	}

	header := `# todolist project configuration
# This file overrides defaults from ~/.config/todolist/config.yaml

`
	footer := `
# persist:
#   queue_size: 64
#   drain_timeout: 5s

# log:
#   level: info
#   format: text

# tui:
#   skip_landing: false
#   alt_screen: true
`
	return os.WriteFile(path, []byte(header+string(body)+footer), 0644)
}

// printStatus prints a status line with color
func printStatus(out io.Writer, symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Fprintf(out, "%s %s\n", c.Sprint(symbol), message)
}
