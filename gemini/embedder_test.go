package gemini_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/qagent"
	"github.com/fwojciec/qagent/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// fakeModels records EmbedContent calls and returns one vector per content
// whose single value is the running index of the content.
type fakeModels struct {
	batches []int
	model   string
	err     error
	short   bool
	next    float32
}

func (f *fakeModels) EmbedContent(_ context.Context, model string, contents []*genai.Content, _ *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	f.model = model
	f.batches = append(f.batches, len(contents))
	if f.err != nil {
		return nil, f.err
	}

	resp := &genai.EmbedContentResponse{}
	for range contents {
		resp.Embeddings = append(resp.Embeddings, &genai.ContentEmbedding{Values: []float32{f.next}})
		f.next++
	}
	if f.short {
		resp.Embeddings = resp.Embeddings[:len(resp.Embeddings)-1]
	}
	return resp, nil
}

func texts(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("chunk %d", i)
	}
	return out
}

func TestEmbedder_Embed(t *testing.T) {
	t.Parallel()

	t.Run("splits requests into batches and keeps order", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{}
		embedder := gemini.NewEmbedder(models, "", nil)

		vectors, err := embedder.Embed(context.Background(), texts(250))

		require.NoError(t, err)
		require.Len(t, vectors, 250)
		assert.Equal(t, []int{100, 100, 50}, models.batches)
		assert.Equal(t, gemini.DefaultEmbedModel, models.model)
		for i, vec := range vectors {
			assert.Equal(t, []float32{float32(i)}, vec)
		}
	})

	t.Run("makes no request for empty input", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{}

		vectors, err := gemini.NewEmbedder(models, "", nil).Embed(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, vectors)
		assert.Empty(t, models.batches)
	})

	t.Run("returns error when vector count differs", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{short: true}

		_, err := gemini.NewEmbedder(models, "", nil).Embed(context.Background(), texts(3))

		assert.Equal(t, qagent.EINTERNAL, qagent.ErrorCode(err))
	})

	t.Run("propagates API errors", func(t *testing.T) {
		t.Parallel()

		apiErr := errors.New("quota exceeded")
		models := &fakeModels{err: apiErr}

		_, err := gemini.NewEmbedder(models, "", nil).Embed(context.Background(), texts(1))

		require.ErrorIs(t, err, apiErr)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		models := &fakeModels{}
		limiter := rate.NewLimiter(rate.Every(time.Hour), 1)

		_, err := gemini.NewEmbedder(models, "", limiter).Embed(ctx, texts(1))

		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, models.batches)
	})

	t.Run("uses configured model", func(t *testing.T) {
		t.Parallel()

		embedder := gemini.NewEmbedder(&fakeModels{}, "gemini-embedding-001", nil)

		assert.Equal(t, "gemini-embedding-001", embedder.Model())
	})
}
