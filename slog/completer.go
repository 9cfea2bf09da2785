package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/qagent"
)

// Ensure LoggingCompleter implements qagent.Completer.
var _ qagent.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging. Prompt and response
// contents are not logged, only their sizes.
type LoggingCompleter struct {
	next   qagent.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next qagent.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the call.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt string) (response string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("complete",
			"prompt_bytes", len(prompt),
			"response_bytes", len(response),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, prompt)
}
