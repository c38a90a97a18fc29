package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DataDir returns the directory holding the lists.
func (c *Config) DataDir() string {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir
	}
	return defaultDataDir()
}

// LogPath returns the diagnostic log file.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir(), "todolist.log")
}

// FilesDir returns the directory used by the file driver.
func (c *Config) FilesDir() string {
	return filepath.Join(c.DataDir(), "lists")
}

// defaultDataDir returns the XDG data directory for todolist.
func defaultDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "todolist")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".local", "share", "todolist")
	}
	return filepath.Join(home, ".local", "share", "todolist")
}

// expandPath expands ${VAR} references and a leading ~/.
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
