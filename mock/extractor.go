package mock

import "github.com/fwojciec/qagent"

var _ qagent.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of qagent.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*qagent.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*qagent.ExtractResult, error) {
	return e.ExtractFn(html)
}
