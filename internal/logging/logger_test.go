package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lafter/internal/config"
	"lafter/internal/logging"
	"lafter/internal/services"
)

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(&buf, "info", "console")
	if err != nil {
		t.Fatalf("NewWithWriter: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "batch")
	logger.Info("model pass complete", slog.Int("processed", 3), slog.String("title", "漫才 ネタ"), logging.Error(errors.New("boom")))
	logger.Debug("hidden")

	line := buf.String()
	if !strings.Contains(line, " INFO batch: model pass complete") {
		t.Fatalf("unexpected header in %q", line)
	}
	for _, want := range []string{"processed=3", `title="漫才 ネタ"`, "error=boom"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be rendered as prefix, got %q", line)
	}
	if strings.Contains(line, "hidden") {
		t.Fatal("debug line should be filtered at info level")
	}
}

func TestConsoleGroups(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(&buf, "debug", "console")
	if err != nil {
		t.Fatalf("NewWithWriter: %v", err)
	}
	logger.WithGroup("llm").Info("call", slog.String("model", "demo"), slog.Group("usage", slog.Int("tokens", 12)))
	line := buf.String()
	if !strings.Contains(line, "llm.model=demo") || !strings.Contains(line, "llm.usage.tokens=12") {
		t.Fatalf("unexpected grouped output %q", line)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(&buf, "debug", "json")
	if err != nil {
		t.Fatalf("NewWithWriter: %v", err)
	}
	logger.Warn("llm verdict rejected", slog.String(logging.FieldErrorKind, "parse"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if record["level"] != "warn" || record["msg"] != "llm verdict rejected" || record["error_kind"] != "parse" {
		t.Fatalf("unexpected record %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key in %v", record)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(&buf, "info", "console")
	if err != nil {
		t.Fatalf("NewWithWriter: %v", err)
	}
	ctx := services.WithItemID(context.Background(), 7)
	ctx = services.WithRunID(ctx, "run-9")
	ctx = services.WithPass(ctx, "llm")
	logging.WithContext(ctx, logger).Info("checked")
	line := buf.String()
	for _, want := range []string{"item_id=7", "run_id=run-9", "pass=llm"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if logging.WithContext(context.Background(), nil) == nil {
		t.Fatal("expected nop logger for nil input")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Format = "json"
	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("written to file")
	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "lafter.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Fatalf("expected message in log file, got %q", data)
	}
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should be disabled")
	}
	logger.Error("ignored")
}
