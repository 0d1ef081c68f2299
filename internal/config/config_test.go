package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"lafter/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("LAFTER_LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "lafter", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Paths.DataDir != filepath.Join(tempHome, ".local", "share", "lafter") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.QueueDBPath() != filepath.Join(cfg.Paths.DataDir, "queue.db") {
		t.Fatalf("unexpected queue path %q", cfg.QueueDBPath())
	}
	if cfg.Classifier.Threshold != 0.5 {
		t.Fatalf("unexpected default threshold %v", cfg.Classifier.Threshold)
	}
	if cfg.Classifier.KeywordsPath != "" {
		t.Fatalf("expected empty keywords path, got %q", cfg.Classifier.KeywordsPath)
	}
	if cfg.LLMEnabled() {
		t.Fatal("expected LLM disabled without api key")
	}
	if cfg.LLM.RetryAttempts != 1 {
		t.Fatalf("expected single attempt default, got %d", cfg.LLM.RetryAttempts)
	}
}

func TestLoadEnvFallbackForAPIKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LAFTER_LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "router-key")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "router-key" {
		t.Fatalf("expected env api key, got %q", cfg.LLM.APIKey)
	}
	if !cfg.LLMEnabled() {
		t.Fatal("expected LLM enabled with key and default model")
	}

	t.Setenv("LAFTER_LLM_API_KEY", "primary-key")
	cfg, _, _, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "primary-key" {
		t.Fatalf("expected LAFTER_LLM_API_KEY to win, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadCustomFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
data_dir = "~/lafter-data"

[classifier]
model_path = "~/models/m.json"
keywords_path = "~/kw.yaml"
threshold = 0.35

[llm]
api_key = "file-key"
model = "demo"
retry_attempts = 3

[batch]
max_items = 25
llm_concurrency = 2
llm_requests_per_second = 0.5

[logging]
format = "JSON"
level = "WARNING"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != cfgPath {
		t.Fatalf("expected custom file to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.DataDir != filepath.Join(tempHome, "lafter-data") {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
	if cfg.Classifier.ModelPath != filepath.Join(tempHome, "models", "m.json") {
		t.Fatalf("unexpected model path %q", cfg.Classifier.ModelPath)
	}
	if cfg.Classifier.KeywordsPath != filepath.Join(tempHome, "kw.yaml") {
		t.Fatalf("unexpected keywords path %q", cfg.Classifier.KeywordsPath)
	}
	if cfg.Classifier.Threshold != 0.35 {
		t.Fatalf("unexpected threshold %v", cfg.Classifier.Threshold)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	llmCfg := cfg.LLMClient()
	if llmCfg.APIKey != "file-key" || llmCfg.Model != "demo" {
		t.Fatalf("unexpected llm config %+v", llmCfg)
	}
	if cfg.Batch.MaxItems != 25 || cfg.Batch.LLMConcurrency != 2 || cfg.Batch.LLMRequestsPerSecond != 0.5 {
		t.Fatalf("unexpected batch config %+v", cfg.Batch)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"threshold zero", func(c *config.Config) { c.Classifier.Threshold = 0 }, "classifier.threshold"},
		{"threshold one", func(c *config.Config) { c.Classifier.Threshold = 1 }, "classifier.threshold"},
		{"threshold above", func(c *config.Config) { c.Classifier.Threshold = 1.2 }, "classifier.threshold"},
		{"threshold negative", func(c *config.Config) { c.Classifier.Threshold = -0.1 }, "classifier.threshold"},
		{"model path", func(c *config.Config) { c.Classifier.ModelPath = "" }, "classifier.model_path"},
		{"max items", func(c *config.Config) { c.Batch.MaxItems = 0 }, "batch.max_items"},
		{"concurrency", func(c *config.Config) { c.Batch.LLMConcurrency = 0 }, "batch.llm_concurrency"},
		{"rate", func(c *config.Config) { c.Batch.LLMRequestsPerSecond = 0 }, "batch.llm_requests_per_second"},
		{"retry attempts", func(c *config.Config) { c.LLM.RetryAttempts = 0 }, "llm.retry_attempts"},
		{"timeout", func(c *config.Config) { c.LLM.TimeoutSeconds = -1 }, "llm.timeout_seconds"},
		{"max batch", func(c *config.Config) { c.API.MaxBatch = 0 }, "api.max_batch"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in %q", tt.want, err)
			}
		})
	}
}

func TestLoadRejectsOutOfRangeThresholdFromFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[classifier]\nthreshold = 1.0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(cfgPath); err == nil || !strings.Contains(err.Error(), "threshold") {
		t.Fatalf("expected threshold error, got %v", err)
	}
}

func TestSampleConfigParsesAndValidates(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample is not valid toml: %v", err)
	}
	if decoded.Classifier.Threshold != 0.5 {
		t.Fatalf("unexpected sample threshold %v", decoded.Classifier.Threshold)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}
