// Package markdown prepares markdown documents for narration. It expands
// mdBook-style includes, replaces fenced code blocks with spoken summaries,
// strips markup that reads poorly aloud, and splits the result into bounded
// chunks aligned to paragraph boundaries.
package markdown
