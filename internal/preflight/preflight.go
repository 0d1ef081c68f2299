package preflight

import (
	"context"

	"lafter/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckModel(cfg.Classifier.ModelPath),
		CheckKeywords(cfg.Classifier.KeywordsPath),
		CheckQueue(ctx, cfg.QueueDBPath()),
	}
	if cfg.LLMEnabled() {
		results = append(results, CheckLLM(ctx, "Title LLM", cfg.LLMClient()))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}
