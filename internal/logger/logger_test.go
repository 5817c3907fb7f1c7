package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInitProductionWritesJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(Options{AppName: "screentime", Output: &buf})

	slog.Debug("hidden")
	slog.Info("entry created", "entry_id", "e1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1 (debug suppressed): %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["msg"] != "entry created" || rec["entry_id"] != "e1" || rec["app"] != "screentime" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestInitDevelopmentWritesTextAtDebug(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(Options{Development: true, Output: &buf})

	slog.Debug("store loaded", "entries", 3)

	if !strings.Contains(buf.String(), "level=DEBUG") || !strings.Contains(buf.String(), "entries=3") {
		t.Errorf("unexpected text output: %q", buf.String())
	}
}
