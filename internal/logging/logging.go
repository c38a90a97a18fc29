// Package logging sets up the diagnostic log for todolist.
// The terminal belongs to the TUI, so log output goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the file logger.
type Options struct {
	// Path is the log file. Empty means logging is discarded.
	Path string
	// Level is one of debug, info, warn, error.
	Level string
	// Formatter is one of text, json, logfmt.
	Formatter string
}

// FileLogger is a leveled logger writing to a file.
type FileLogger struct {
	*log.Logger
	file *os.File
}

// Open creates a logger writing to opts.Path.
// If the path is empty, returns a logger that discards everything.
// Creates parent directories if they don't exist.
func Open(opts Options) (*FileLogger, error) {
	if opts.Path == "" {
		return &FileLogger{Logger: Discard()}, nil
	}

	dir := filepath.Dir(opts.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := New(f, opts.Level, opts.Formatter)
	logger.Info("log opened", "started", time.Now().Format(time.RFC3339))

	return &FileLogger{Logger: logger, file: f}, nil
}

// Close closes the underlying file, if any.
func (l *FileLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// New creates a logger writing to w.
func New(w io.Writer, level, formatter string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       ParseFormatter(formatter),
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "todolist",
	})
}

// Discard returns a logger that drops all output.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel parses a level name. Unknown names map to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name. Unknown names map to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
