package mock

import (
	"context"

	"github.com/fwojciec/qagent"
)

var _ qagent.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of qagent.Embedder.
type Embedder struct {
	ModelFn func() string
	EmbedFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) Model() string {
	return e.ModelFn()
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}
