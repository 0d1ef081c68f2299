package config

const (
	defaultConfigPath           = "~/.config/lafter/config.toml"
	defaultDataDir              = "~/.local/share/lafter"
	defaultLogDir               = "~/.local/share/lafter/logs"
	defaultModelPath            = "~/.local/share/lafter/models/video_classifier.json"
	defaultThreshold            = 0.5
	defaultLLMBaseURL           = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel             = "google/gemini-2.5-flash"
	defaultLLMReferer           = "https://github.com/yokonari/lafter"
	defaultLLMTitle             = "Lafter Title Classifier"
	defaultLLMTimeoutSeconds    = 30
	defaultLLMRetryAttempts     = 1
	defaultBatchMaxItems        = 100
	defaultBatchLLMConcurrency  = 3
	defaultBatchLLMRequestsRate = 2.0
	defaultAPIBind              = "127.0.0.1:7497"
	defaultAPIMaxBatch          = 200
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Classifier: Classifier{
			ModelPath: defaultModelPath,
			Threshold: defaultThreshold,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
			RetryAttempts:  defaultLLMRetryAttempts,
		},
		Batch: Batch{
			MaxItems:             defaultBatchMaxItems,
			LLMConcurrency:       defaultBatchLLMConcurrency,
			LLMRequestsPerSecond: defaultBatchLLMRequestsRate,
		},
		API: API{
			Bind:     defaultAPIBind,
			MaxBatch: defaultAPIMaxBatch,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
