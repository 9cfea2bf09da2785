package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/qagent"
)

var _ qagent.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher retries fetches that fail with EUNAVAILABLE, waiting the
// configured delay between attempts. Other errors are returned at once.
type RetryFetcher struct {
	fetcher qagent.Fetcher
	delays  []time.Duration
	logger  *slog.Logger
}

// NewRetryFetcher wraps fetcher. A nil delays slice uses DefaultRetryDelays.
func NewRetryFetcher(fetcher qagent.Fetcher, delays []time.Duration, logger *slog.Logger) *RetryFetcher {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RetryFetcher{fetcher: fetcher, delays: delays, logger: logger}
}

// Fetch makes up to len(delays)+1 attempts.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := f.fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if qagent.ErrorCode(err) != qagent.EUNAVAILABLE || attempt >= maxAttempts-1 {
			break
		}

		f.logger.Warn("fetch retry", "url", url, "attempt", attempt+2, "error", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close closes the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.fetcher.Close()
}
