package testsupport

import (
	"path/filepath"
	"testing"

	"lafter/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The sample model is written into the temp tree and the LLM is left
// unconfigured unless an option enables it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Classifier.ModelPath = WriteModel(t, filepath.Join(base, "models"), SampleArtifact())
	cfgVal.LLM.APIKey = ""
	cfgVal.API.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithLLMEndpoint points the LLM client at baseURL with a dummy key.
func WithLLMEndpoint(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.APIKey = "test-key"
		b.cfg.LLM.BaseURL = baseURL
	}
}

// WithKeywordsPath overrides the keyword table location.
func WithKeywordsPath(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Classifier.KeywordsPath = path
	}
}

// WithThreshold overrides the decision threshold.
func WithThreshold(threshold float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Classifier.Threshold = threshold
	}
}

// WithBatch overrides the batch runner limits.
func WithBatch(maxItems, concurrency int, rps float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Batch.MaxItems = maxItems
		b.cfg.Batch.LLMConcurrency = concurrency
		b.cfg.Batch.LLMRequestsPerSecond = rps
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
