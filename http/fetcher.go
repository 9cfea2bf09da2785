// Package http retrieves target pages that don't need JavaScript rendering.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/qagent"
)

const (
	// DefaultFetchTimeout is the default timeout for HTTP requests.
	// Kept consistent with rod.DefaultFetchTimeout.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultMaxBodySize caps the size of a fetched page.
	DefaultMaxBodySize = 10 << 20

	userAgent = "qagent/1.0"
)

// Ensure Fetcher implements qagent.Fetcher at compile time.
var _ qagent.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page HTML with plain HTTP GET requests.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodySize sets the largest page body accepted, in bytes.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", qagent.Errorf(qagent.EINVALID, "invalid page URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", qagent.Errorf(qagent.EUNAVAILABLE, "fetch %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", qagent.Errorf(qagent.ENOTFOUND, "page not found: %s", rawURL)
	case resp.StatusCode != http.StatusOK:
		return "", qagent.Errorf(qagent.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > f.maxBodySize {
		return "", qagent.Errorf(qagent.EINVALID, "page %s exceeds %s", rawURL, qagent.FormatBytes(int(f.maxBodySize)))
	}

	return string(body), nil
}

// Close is a no-op; http.Client needs no explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
