package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"Info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"WARNING", LogLevelWarn},
		{"error", LogLevelError},
		{"loud", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
	if LogLevel(99).String() != "UNKNOWN" {
		t.Errorf("LogLevel(99).String() = %q", LogLevel(99).String())
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf, Prefix: "tupshar"})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("sign list reload failed: %v", "EOF")
	logger.Error("error")

	output := buf.String()
	for _, filtered := range []string{"[DEBUG]", "[INFO]"} {
		if strings.Contains(output, filtered) {
			t.Errorf("expected %s to be filtered out", filtered)
		}
	}
	if !strings.Contains(output, "[WARN] tupshar: sign list reload failed: EOF") {
		t.Errorf("unexpected warn line: %s", output)
	}
	if !strings.Contains(output, "[ERROR]") {
		t.Error("expected ERROR in output")
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithComponent("glyph").WithField("path", "signs.json").WithField("entries", 42).Info("loaded")

	if !strings.Contains(buf.String(), "loaded {component=glyph, entries=42, path=signs.json}") {
		t.Errorf("unexpected fields: %s", buf.String())
	}
}

func TestLogger_WithFieldReplacesAndCopies(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf}).WithField("script", "a.lua")
	derived := base.WithField("script", "b.lua")

	base.Info("first")
	derived.Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.HasSuffix(lines[0], "first {script=a.lua}") {
		t.Errorf("parent logger changed: %s", lines[0])
	}
	if !strings.HasSuffix(lines[1], "second {script=b.lua}") {
		t.Errorf("field not replaced: %s", lines[1])
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Error("should not panic")
	NullLogger.WithComponent("x").Info("still nothing")

	var app Application
	if app.Logger() != NullLogger {
		t.Error("an application without a logger should use NullLogger")
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tupshar.log")
	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile: %v", err)
	}

	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: f})
	logger.Info("first")
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	f, err = OpenLogFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	NewLogger(LoggerConfig{Level: LogLevelInfo, Output: f}).Info("second")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "\n") != 2 {
		t.Errorf("expected appended lines, got %q", data)
	}
}
