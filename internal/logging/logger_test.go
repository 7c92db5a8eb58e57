package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// restoreDefault puts the previous default logger back after the test.
func restoreDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "info", "json"))

	logger.Debug("hidden")
	logger.Info("dataset generated", "dataset", "countries_datahub")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if entry["msg"] != "dataset generated" || entry["dataset"] != "countries_datahub" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewHandler_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "debug", "text"))

	logger.Debug("resolved", "group", "countries")

	if got := buf.String(); !strings.Contains(got, "group=countries") {
		t.Errorf("output = %q, want it to contain group=countries", got)
	}
}

func TestFromContext_RunID(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(NewHandler(&buf, "info", "text")))

	ctx := WithRunID(context.Background(), "run-1234")
	if got := RunID(ctx); got != "run-1234" {
		t.Errorf("RunID() = %q, want %q", got, "run-1234")
	}

	WithFields(ctx, "group", "currencies").Info("resolved")

	out := buf.String()
	if !strings.Contains(out, "run_id=run-1234") || !strings.Contains(out, "group=currencies") {
		t.Errorf("output = %q, want run_id and group", out)
	}
}

func TestFromContext_NoRunID(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(NewHandler(&buf, "info", "text")))

	FromContext(context.Background()).Info("plain")

	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("output = %q, want no run_id", buf.String())
	}
}

func TestSetup_File(t *testing.T) {
	restoreDefault(t)

	path := filepath.Join(t.TempDir(), "isogen.log")
	closer := Setup("info", "json", path, 1)

	slog.Info("written to file", "output", "countries.go")

	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"output":"countries.go"`) {
		t.Errorf("log file = %q, want the entry", data)
	}
}

func TestSetup_NoFile(t *testing.T) {
	restoreDefault(t)

	closer := Setup("warn", "text", "", 10)
	if err := closer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if slog.Default().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled, want warn level")
	}
}
