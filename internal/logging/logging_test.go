package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  log.Level
	}{
		{"debug", "debug", log.DebugLevel},
		{"info", "info", log.InfoLevel},
		{"warn", "warn", log.WarnLevel},
		{"warning", "warning", log.WarnLevel},
		{"error", "error", log.ErrorLevel},
		{"mixed case", " DEBUG ", log.DebugLevel},
		{"unknown defaults to info", "verbose", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	if ParseFormatter("json") != log.JSONFormatter {
		t.Error("json should map to JSONFormatter")
	}
	if ParseFormatter("logfmt") != log.LogfmtFormatter {
		t.Error("logfmt should map to LogfmtFormatter")
	}
	if ParseFormatter("") != log.TextFormatter {
		t.Error("empty should map to TextFormatter")
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "text")

	logger.Info("hidden")
	logger.Warn("shown", "key", "todos")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "todos") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestOpen_EmptyPathDiscards(t *testing.T) {
	l, err := Open(Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	l.Error("nothing happens")
	if err := l.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestOpen_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "todolist.log")

	l, err := Open(Options{Path: path, Level: "debug"})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	l.Error("save failed", "key", "todos")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "save failed") {
		t.Errorf("log file missing message: %q", data)
	}
}
