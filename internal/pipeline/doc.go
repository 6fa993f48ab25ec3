// Package pipeline drives the end-to-end narration flow: read a markdown
// document, expand includes, summarize code blocks, sanitize, chunk,
// synthesize each chunk, merge the fragments, and write the result. Each
// document is processed independently so one failure never aborts a run.
package pipeline
