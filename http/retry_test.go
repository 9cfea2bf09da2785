package http_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/qagent"
	qagenthttp "github.com/fwojciec/qagent/http"
	"github.com/fwojciec/qagent/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noDelays = []time.Duration{0, 0, 0}

func TestRetryFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				attempts++
				return "<html>content</html>", nil
			},
		}

		html, err := qagenthttp.NewRetryFetcher(inner, noDelays, nil).Fetch(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries unavailable errors", func(t *testing.T) {
		t.Parallel()

		var attempts int
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				attempts++
				if attempts < 4 {
					return "", qagent.Errorf(qagent.EUNAVAILABLE, "HTTP 503")
				}
				return "<html>ok</html>", nil
			},
		}

		html, err := qagenthttp.NewRetryFetcher(inner, noDelays, nil).Fetch(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", html)
		assert.Equal(t, 4, attempts)
	})

	t.Run("returns last error after max attempts", func(t *testing.T) {
		t.Parallel()

		var attempts int
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				attempts++
				return "", qagent.Errorf(qagent.EUNAVAILABLE, "HTTP 502")
			},
		}

		_, err := qagenthttp.NewRetryFetcher(inner, noDelays, nil).Fetch(context.Background(), "https://example.com")

		assert.Equal(t, "HTTP 502", qagent.ErrorMessage(err))
		assert.Equal(t, 4, attempts)
	})

	t.Run("does not retry missing pages", func(t *testing.T) {
		t.Parallel()

		var attempts int
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				attempts++
				return "", qagent.Errorf(qagent.ENOTFOUND, "page not found")
			},
		}

		_, err := qagenthttp.NewRetryFetcher(inner, noDelays, nil).Fetch(context.Background(), "https://example.com")

		assert.Equal(t, qagent.ENOTFOUND, qagent.ErrorCode(err))
		assert.Equal(t, 1, attempts)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		var attempts int
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				attempts++
				cancel()
				return "", qagent.Errorf(qagent.EUNAVAILABLE, "connection reset")
			},
		}

		_, err := qagenthttp.NewRetryFetcher(inner, []time.Duration{time.Hour}, nil).Fetch(ctx, "https://example.com")

		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, 1, attempts)
	})

	t.Run("closes wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		inner := &mock.Fetcher{CloseFn: func() error { closed = true; return nil }}

		require.NoError(t, qagenthttp.NewRetryFetcher(inner, nil, nil).Close())
		assert.True(t, closed)
	})
}
