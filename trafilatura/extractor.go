// Package trafilatura extracts the main content of HTML support documents.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/qagent"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements qagent.Extractor at compile time.
var _ qagent.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of rawHTML with boilerplate removed.
func (e *Extractor) Extract(rawHTML string) (*qagent.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, qagent.Errorf(qagent.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &qagent.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
