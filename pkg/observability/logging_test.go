package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug level", input: "debug", expected: slog.LevelDebug},
		{name: "info level", input: "info", expected: slog.LevelInfo},
		{name: "warn level", input: "warn", expected: slog.LevelWarn},
		{name: "warning level", input: "warning", expected: slog.LevelWarn},
		{name: "error level", input: "error", expected: slog.LevelError},
		{name: "uppercase DEBUG", input: "DEBUG", expected: slog.LevelDebug},
		{name: "padded error", input: " error ", expected: slog.LevelError},
		{name: "empty string defaults to info", input: "", expected: slog.LevelInfo},
		{name: "unknown level defaults to info", input: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "debug", Format: "json", Output: &buf})

	logger.Debug("batch rendered", "beneficiaries", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}
	if entry["msg"] != "batch rendered" {
		t.Errorf("msg = %v, want %q", entry["msg"], "batch rendered")
	}
	if entry["beneficiaries"] != float64(3) {
		t.Errorf("beneficiaries = %v, want 3", entry["beneficiaries"])
	}
}

func TestNewLoggerTextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "warn", Output: &buf})

	logger.Info("dropped")
	logger.Warn("kept", "reason", "amount_overflow")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info message written at warn level: %s", out)
	}
	if !strings.Contains(out, "msg=kept") || !strings.Contains(out, "reason=amount_overflow") {
		t.Errorf("unexpected text output: %s", out)
	}
}

func TestInitLoggerSetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Format: "text", Output: &buf})
	if logger == nil {
		t.Fatal("InitLogger returned nil")
	}

	slog.Info("through default")
	if !strings.Contains(buf.String(), "through default") {
		t.Errorf("default logger not replaced, got %q", buf.String())
	}
}
