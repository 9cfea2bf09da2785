// Package readability provides a fallback main-content extractor for HTML
// support documents that trafilatura cannot handle.
package readability

import (
	"strings"

	"github.com/fwojciec/qagent"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements qagent.Extractor at compile time.
var _ qagent.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*qagent.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, qagent.Errorf(qagent.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &qagent.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
