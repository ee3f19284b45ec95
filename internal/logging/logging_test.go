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

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "JSON")
	logger.Info("test message", "path", "OEBPS/a.xhtml")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "test message" || rec["path"] != "OEBPS/a.xhtml" {
		t.Errorf("record = %v", rec)
	}
}

func TestNew_TextLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "text")

	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	logger.Warn("skipping document", "path", "a.xhtml")

	out := buf.String()
	if !strings.Contains(out, "skipping document") || !strings.Contains(out, "a.xhtml") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output to a buffer should not be colored: %q", out)
	}
}

func TestSetup_LogFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer
	logger, closeLog, err := Setup(&console, "debug", "text", dir)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	logger.Debug("extracted", "chars", 42)
	if err := closeLog(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if !strings.Contains(console.String(), "extracted") {
		t.Errorf("console output = %q", console.String())
	}

	files, err := filepath.Glob(filepath.Join(dir, "epub2text_*.log"))
	if err != nil || len(files) != 1 {
		t.Fatalf("log files = %v, %v", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"extracted"`) {
		t.Errorf("log file = %q", data)
	}
	if slog.Default() != logger {
		t.Error("Setup should install the logger as default")
	}
}
