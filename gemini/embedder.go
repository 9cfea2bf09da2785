package gemini

import (
	"context"
	"fmt"
	"slices"

	"github.com/fwojciec/qagent"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	// DefaultEmbedModel is the embedding model used when none is configured.
	DefaultEmbedModel = "text-embedding-004"

	// maxBatchSize is the API limit on contents per EmbedContent request.
	maxBatchSize = 100
)

// ContentEmbedder is the part of the genai Models service used by Embedder.
// *genai.Models satisfies it.
type ContentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Ensure Embedder implements qagent.Embedder at compile time.
var _ qagent.Embedder = (*Embedder)(nil)

// Embedder implements qagent.Embedder using the Gemini embedding API.
// Requests are split into batches and paced by a rate limiter.
type Embedder struct {
	models  ContentEmbedder
	model   string
	limiter *rate.Limiter
}

// NewEmbedder creates a new Embedder. An empty model uses
// DefaultEmbedModel; a nil limiter disables pacing.
func NewEmbedder(models ContentEmbedder, model string, limiter *rate.Limiter) *Embedder {
	if model == "" {
		model = DefaultEmbedModel
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &Embedder{models: models, model: model, limiter: limiter}
}

// Model returns the embedding model name.
func (e *Embedder) Model() string {
	return e.model
}

// Embed returns one vector per text, in order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for batch := range slices.Chunk(texts, maxBatchSize) {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		contents := make([]*genai.Content, len(batch))
		for i, text := range batch {
			contents[i] = genai.NewContentFromText(text, genai.RoleUser)
		}

		resp, err := e.models.EmbedContent(ctx, e.model, contents, nil)
		if err != nil {
			return nil, fmt.Errorf("embed content: %w", err)
		}
		if resp == nil || len(resp.Embeddings) != len(batch) {
			got := 0
			if resp != nil {
				got = len(resp.Embeddings)
			}
			return nil, qagent.Errorf(qagent.EINTERNAL, "gemini returned %d embeddings for %d texts", got, len(batch))
		}

		for _, emb := range resp.Embeddings {
			if emb == nil || len(emb.Values) == 0 {
				return nil, qagent.Errorf(qagent.EINTERNAL, "gemini returned an empty embedding")
			}
			vectors = append(vectors, emb.Values)
		}
	}

	return vectors, nil
}
