package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.Paths.OutputDir, err = ExpandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.CacheDir, err = ExpandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	// The environment wins over the file so keys stay out of dotfiles.
	if env := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); env != "" {
		c.Gemini.APIKey = env
	}
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	c.Gemini.BaseURL = strings.TrimRight(strings.TrimSpace(c.Gemini.BaseURL), "/")
	c.Narration.Voice = strings.TrimSpace(c.Narration.Voice)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Gemini.BaseURL == "" {
		return errors.New("gemini.base_url must be set")
	}
	if c.Gemini.TTSModel == "" {
		return errors.New("gemini.tts_model must be set")
	}
	if c.Gemini.TimeoutSeconds <= 0 {
		return errors.New("gemini.timeout_seconds must be positive")
	}
	if c.Gemini.RetryAttempts < 0 {
		return errors.New("gemini.retry_attempts must not be negative")
	}
	if c.Narration.ChunkChars < 100 {
		return errors.New("narration.chunk_chars must be at least 100")
	}
	if c.Narration.SilenceWarnRatio < 0 || c.Narration.SilenceWarnRatio > 1 {
		return errors.New("narration.silence_warn_ratio must be between 0 and 1")
	}
	if c.Cache.Enabled && c.Cache.MaxAgeDays < 0 {
		return errors.New("cache.max_age_days must not be negative")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

// RequireAPIKey fails with guidance when no API key is configured. Commands
// that talk to the API call this; config inspection commands do not.
func (c *Config) RequireAPIKey() error {
	if c.Gemini.APIKey != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/bookvoice/config.toml"
	}
	return fmt.Errorf("gemini.api_key is required. Set GEMINI_API_KEY or edit %s (create with 'bookvoice config init')", defaultPath)
}
