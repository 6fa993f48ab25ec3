// Package gemini wraps the Gemini generateContent API for the two calls
// bookvoice makes: speech synthesis of a text chunk and spoken-style
// summarization of a code block. Transient failures (429, 5xx, timeouts)
// are retried with capped exponential backoff, honoring Retry-After.
package gemini
