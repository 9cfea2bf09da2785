package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/qagent"
)

// Ensure LoggingEmbedder implements qagent.Embedder.
var _ qagent.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with debug logging.
type LoggingEmbedder struct {
	next   qagent.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next qagent.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Model delegates to the wrapped embedder.
func (e *LoggingEmbedder) Model() string {
	return e.next.Model()
}

// Embed delegates to the wrapped embedder and logs the batch.
func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		dims := 0
		if len(vectors) > 0 {
			dims = len(vectors[0])
		}
		e.logger.Debug("embed",
			"model", e.next.Model(),
			"texts", len(texts),
			"dimensions", dims,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, texts)
}
