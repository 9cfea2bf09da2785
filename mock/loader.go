package mock

import (
	"context"

	"github.com/fwojciec/qagent"
)

var _ qagent.DocumentLoader = (*DocumentLoader)(nil)

// DocumentLoader is a mock implementation of qagent.DocumentLoader.
type DocumentLoader struct {
	LoadFn func(ctx context.Context, paths []string, progress qagent.LoadProgressFunc) ([]*qagent.Document, error)
}

func (l *DocumentLoader) Load(ctx context.Context, paths []string, progress qagent.LoadProgressFunc) ([]*qagent.Document, error) {
	return l.LoadFn(ctx, paths, progress)
}

var _ qagent.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of qagent.Normalizer.
type Normalizer struct {
	NormalizeFn func(src string) (*qagent.NormalizeResult, error)
}

func (n *Normalizer) Normalize(src string) (*qagent.NormalizeResult, error) {
	return n.NormalizeFn(src)
}
