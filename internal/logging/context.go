package logging

import (
	"context"
	"log/slog"
)

type contextKey int

const (
	runIDKey contextKey = iota
	documentKey
)

const (
	// FieldRunID is the standardized structured logging key for run identifiers.
	FieldRunID = "run_id"
	// FieldDocument is the standardized structured logging key for the markdown
	// document currently being narrated.
	FieldDocument = "document"
)

// WithRunID stores the run identifier in the context for later extraction.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithDocument stores the document name in the context for later extraction.
func WithDocument(ctx context.Context, document string) context.Context {
	return context.WithValue(ctx, documentKey, document)
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		logger = logger.With(slog.String(FieldRunID, runID))
	}
	if document, ok := ctx.Value(documentKey).(string); ok && document != "" {
		logger = logger.With(slog.String(FieldDocument, document))
	}
	return logger
}

// Error returns a standardized attribute for error values.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}
