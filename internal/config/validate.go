package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateClassifier(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateClassifier() error {
	if c.Classifier.ModelPath == "" {
		return errors.New("classifier.model_path must be set")
	}
	t := c.Classifier.Threshold
	if math.IsNaN(t) || t <= 0 || t >= 1 {
		return fmt.Errorf("classifier.threshold must be strictly between 0 and 1 (got %v)", t)
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.TimeoutSeconds < 0 {
		return errors.New("llm.timeout_seconds must be >= 0")
	}
	if c.LLM.RetryAttempts < 1 {
		return errors.New("llm.retry_attempts must be >= 1")
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.MaxItems <= 0 {
		return errors.New("batch.max_items must be positive")
	}
	if c.Batch.LLMConcurrency <= 0 {
		return errors.New("batch.llm_concurrency must be positive")
	}
	rps := c.Batch.LLMRequestsPerSecond
	if math.IsNaN(rps) || math.IsInf(rps, 0) || rps <= 0 {
		return errors.New("batch.llm_requests_per_second must be a positive number")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.MaxBatch <= 0 {
		return errors.New("api.max_batch must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (use console or json)", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported", c.Logging.Level)
	}
	return nil
}
