package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelRouting(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(New(&stdout, &stderr, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("info message", "k", "v")
	logger.Warn("warn message")
	logger.Error("error message")

	out := stdout.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, "info message") || !strings.Contains(out, "k=v") {
		t.Errorf("stdout missing info record: %q", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("stdout missing warn record: %q", out)
	}
	if strings.Contains(out, "error message") {
		t.Errorf("error record written to stdout: %q", out)
	}
	if !strings.Contains(stderr.String(), "error message") {
		t.Errorf("stderr missing error record: %q", stderr.String())
	}
}

func TestWithAttrsKeepsRouting(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(New(&stdout, &stderr, slog.LevelDebug)).With("component", "export").WithGroup("g")

	logger.Debug("visible", "n", 1)
	logger.Error("failed")

	if !strings.Contains(stdout.String(), "component=export") || !strings.Contains(stdout.String(), "g.n=1") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "failed") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestSetupLogFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "popis.log")
	var stdout, stderr bytes.Buffer
	cleanup, err := Setup(Options{Path: path, Stdout: &stdout, Stderr: &stderr})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	slog.Info("to file")
	slog.Error("also to file")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "to file") || !strings.Contains(string(data), "also to file") {
		t.Errorf("log file = %q", data)
	}
}

func TestSetupBadPath(t *testing.T) {
	cleanup, err := Setup(Options{Path: filepath.Join(t.TempDir(), "missing", "popis.log")})
	if err == nil {
		t.Fatal("expected error for unwritable log path")
	}
	cleanup()
}
