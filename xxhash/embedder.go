// Package xxhash provides an offline Embedder based on feature hashing of
// words with xxHash. It needs no network access or model files, which makes
// it suitable for tests and air-gapped use; retrieval quality is lexical.
package xxhash

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/qagent"
)

// DefaultDimensions matches the vector size of common small sentence models.
const DefaultDimensions = 384

// Ensure Embedder implements qagent.Embedder at compile time.
var _ qagent.Embedder = (*Embedder)(nil)

// Embedder maps each lowercased word to a signed bucket and L2-normalizes
// the result, so cosine similarity approximates word overlap.
type Embedder struct {
	dimensions int
}

// NewEmbedder returns an Embedder producing vectors of the given size.
// Non-positive sizes use DefaultDimensions.
func NewEmbedder(dimensions int) *Embedder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Embedder{dimensions: dimensions}
}

// Model identifies the hashing scheme. Bump the version when the
// tokenization or bucketing changes.
func (e *Embedder) Model() string {
	return fmt.Sprintf("xxhash-fh-%d-v1", e.dimensions)
}

// Embed returns one unit vector per text. Text without words maps to the
// zero vector.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = e.embed(text)
	}
	return out, nil
}

func (e *Embedder) embed(text string) []float32 {
	vec := make([]float32, e.dimensions)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := xxhash.Sum64String(w)
		bucket := h % uint64(e.dimensions)
		if h>>63 == 1 {
			vec[bucket]--
		} else {
			vec[bucket]++
		}
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum > 0 {
		norm := float32(1 / math.Sqrt(sum))
		for i := range vec {
			vec[i] *= norm
		}
	}
	return vec
}
