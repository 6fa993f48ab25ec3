// Package logging assembles the structured slog loggers used across
// bookvoice. It owns the console/JSON handler choice, level plumbing, and
// context helpers so pipeline code automatically tags log lines with the run
// ID and the document being narrated. Prefer these constructors over
// hand-rolled slog setup so every component emits the same shape.
package logging
