package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookvoice/internal/merge"
	"bookvoice/internal/riffwav"
)

const (
	defaultHTTPTimeout    = 120 * time.Second
	defaultRetryMaxDelay  = 60 * time.Second
	defaultRetryBaseDelay = 1 * time.Second
	defaultRetryAttempts  = 6

	// Headerless PCM responses without a rate parameter are assumed to be
	// 24 kHz mono 16-bit, the synthesis default.
	defaultPCMSampleRate = 24000
)

// Config captures the runtime settings required to talk to the Gemini API.
type Config struct {
	APIKey         string
	BaseURL        string
	TTSModel       string
	SummaryModel   string
	TimeoutSeconds int
	RetryAttempts  int
}

// Client issues generateContent requests for synthesis and summarization.
type Client struct {
	cfg        Config
	httpClient *http.Client

	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	sleeper          func(time.Duration)
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryBackoff overrides the retry backoff delays.
func WithRetryBackoff(baseDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.retryBaseDelay = baseDelay
		c.retryMaxDelay = maxDelay
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// NewClient constructs a Gemini client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	attempts := defaultRetryAttempts
	if cfg.RetryAttempts > 0 {
		attempts = cfg.RetryAttempts
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			TTSModel:       strings.TrimSpace(cfg.TTSModel),
			SummaryModel:   strings.TrimSpace(cfg.SummaryModel),
			TimeoutSeconds: cfg.TimeoutSeconds,
			RetryAttempts:  cfg.RetryAttempts,
		},
		httpClient:       &http.Client{Timeout: timeout},
		retryMaxAttempts: attempts,
		retryBaseDelay:   defaultRetryBaseDelay,
		retryMaxDelay:    defaultRetryMaxDelay,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Synthesize converts one text chunk into an audio fragment using the given
// prebuilt voice. Raw linear PCM responses are wrapped into a WAVE container
// here so downstream merging only ever sees containerized audio.
func (c *Client) Synthesize(ctx context.Context, text, voice string) (merge.Fragment, error) {
	var empty merge.Fragment
	if strings.TrimSpace(text) == "" {
		return empty, errors.New("tts: text required")
	}
	if strings.TrimSpace(voice) == "" {
		return empty, errors.New("tts: voice required")
	}
	if c.cfg.APIKey == "" {
		return empty, errors.New("tts: api key required")
	}

	temperature := 1.0
	payload := generateContentRequest{
		Contents: []content{{Role: "user", Parts: []textPart{{Text: text}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"audio"},
			Temperature:        &temperature,
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{Prebuilt: prebuiltVoiceConfig{VoiceName: voice}},
			},
		},
	}

	resp, err := c.generateWithRetry(ctx, c.cfg.TTSModel, payload, "tts")
	if err != nil {
		return empty, err
	}
	data, mime, ok := resp.firstInlineData()
	if !ok {
		return empty, errors.New("tts: response carried no inline audio data")
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return empty, fmt.Errorf("tts: decode base64 audio: %w", err)
	}

	if merge.IsRawPCM(mime) {
		rate, ok := merge.SampleRateFromMIME(mime)
		if !ok {
			rate = defaultPCMSampleRate
		}
		wav, err := riffwav.WrapPCM(raw, rate, 1, 16)
		if err != nil {
			return empty, fmt.Errorf("tts: wrap pcm: %w", err)
		}
		return merge.Fragment{Bytes: wav, MIME: "audio/wav"}, nil
	}
	return merge.Fragment{Bytes: raw, MIME: mime}, nil
}

// SummarizeCode converts a code block into prose suitable for narration.
// It satisfies markdown.Summarizer.
func (c *Client) SummarizeCode(ctx context.Context, code string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", errors.New("summarize: api key required")
	}
	payload := generateContentRequest{
		Contents: []content{{Role: "user", Parts: []textPart{{Text: summaryPrompt(code)}}}},
		GenerationConfig: &generationConfig{
			ThinkingConfig: &thinkingConfig{ThinkingBudget: -1},
		},
	}
	resp, err := c.generateWithRetry(ctx, c.cfg.SummaryModel, payload, "summarize")
	if err != nil {
		return "", err
	}
	text, ok := resp.firstText()
	if !ok {
		return "", errors.New("summarize: response carried no text")
	}
	return text, nil
}

type httpStatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("gemini request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

func (c *Client) generateWithRetry(ctx context.Context, model string, payload generateContentRequest, op string) (*generateContentResponse, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("%s: model required", op)
	}
	attempts := c.retryAttempts()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := c.generateOnce(ctx, model, payload, op)
		if err == nil {
			return resp, nil
		}

		delay, retry := c.retryDelay(ctx, err, attempt, attempts)
		if !retry {
			return nil, err
		}
		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			return nil, sleepErr
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = errors.New("unknown retry failure")
	}
	return nil, fmt.Errorf("%s: failed after %d attempts: %w", op, attempts, lastErr)
}

func (c *Client) generateOnce(ctx context.Context, model string, payload generateContentRequest, op string) (*generateContentResponse, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, model, url.QueryEscape(c.cfg.APIKey))
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode body: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("%s: new request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: http error: %w", op, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		retryAfter, _ := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, &httpStatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			RetryAfter: retryAfter,
		}
	}
	var decoded generateContentResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("%s: api error: %s", op, strings.TrimSpace(decoded.Error.Message))
	}
	return &decoded, nil
}

func (c *Client) retryAttempts() int {
	if c == nil || c.retryMaxAttempts <= 0 {
		return 1
	}
	return c.retryMaxAttempts
}

func (c *Client) retryDelay(ctx context.Context, err error, attempt, maxAttempts int) (time.Duration, bool) {
	if attempt >= maxAttempts || err == nil || ctx == nil || ctx.Err() != nil {
		return 0, false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}

	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusRequestTimeout,
			statusErr.StatusCode == http.StatusTooManyRequests,
			statusErr.StatusCode >= http.StatusInternalServerError:
			if statusErr.RetryAfter > 0 {
				return c.capDelay(statusErr.RetryAfter), true
			}
			return c.backoffDelay(attempt), true
		default:
			return 0, false
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return c.backoffDelay(attempt), true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return c.backoffDelay(attempt), true
	}

	return 0, false
}

func (c *Client) backoffDelay(attempt int) time.Duration {
	base := c.retryBaseDelay
	if base <= 0 {
		return 0
	}
	maxDelay := c.retryMaxDelay
	if maxDelay <= 0 {
		maxDelay = defaultRetryMaxDelay
	}

	// attempt 1 -> base, attempt 2 -> base*2, attempt 3 -> base*4, ...
	delay := base
	for i := 1; i < attempt; i++ {
		if delay > maxDelay/2 {
			delay = maxDelay
			break
		}
		delay *= 2
	}
	return c.capDelay(delay)
}

func (c *Client) capDelay(delay time.Duration) time.Duration {
	if delay < 0 {
		return 0
	}
	maxDelay := c.retryMaxDelay
	if maxDelay <= 0 {
		maxDelay = defaultRetryMaxDelay
	}
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	if when, err := http.ParseTime(value); err == nil {
		delay := time.Until(when)
		if delay < 0 {
			return 0, false
		}
		return delay, true
	}
	return 0, false
}
