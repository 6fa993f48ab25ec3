package config

const (
	defaultOutputDir        = "./audio"
	defaultCacheDir         = "~/.cache/bookvoice"
	defaultLogDir           = "~/.local/share/bookvoice/logs"
	defaultBaseURL          = "https://generativelanguage.googleapis.com/v1beta"
	defaultTTSModel         = "gemini-2.5-pro-preview-tts"
	defaultSummaryModel     = "gemini-2.5-flash"
	defaultTimeoutSeconds   = 120
	defaultRetryAttempts    = 6
	defaultVoice            = "Zephyr"
	defaultChunkChars       = 3000
	defaultSilenceWarnRatio = 0.9
	defaultCacheMaxAgeDays  = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			CacheDir:  defaultCacheDir,
			LogDir:    defaultLogDir,
		},
		Gemini: Gemini{
			BaseURL:        defaultBaseURL,
			TTSModel:       defaultTTSModel,
			SummaryModel:   defaultSummaryModel,
			TimeoutSeconds: defaultTimeoutSeconds,
			RetryAttempts:  defaultRetryAttempts,
		},
		Narration: Narration{
			Voice:            defaultVoice,
			ChunkChars:       defaultChunkChars,
			CodeSummaries:    true,
			SilenceWarnRatio: defaultSilenceWarnRatio,
		},
		Cache: Cache{
			Enabled:    true,
			MaxAgeDays: defaultCacheMaxAgeDays,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
