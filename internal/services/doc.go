// Package services groups clients for external APIs. Each integration lives
// in its own subpackage; gemini holds the synthesis and summarization client.
package services
