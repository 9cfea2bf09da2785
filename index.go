package qagent

import "context"

// Embedder maps text to vectors under a fixed, versioned model. The same
// text always produces the same vector for a given Model. Changing the
// model invalidates every persisted index built with the previous one.
type Embedder interface {
	// Model identifies the embedding model and its version.
	Model() string

	// Embed returns one vector per input text, in order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// SearchResult is a chunk matched by similarity search.
type SearchResult struct {
	Chunk *Chunk `json:"chunk"`

	// Score is the cosine similarity between query and chunk (higher is closer).
	Score float32 `json:"score"`
}

// Index is an open handle on the knowledge index. Handles are invalidated
// by a rebuild of the store they came from.
type Index interface {
	// Search returns the k chunks most similar to query, most similar
	// first. Ties keep insertion order. Fewer than k results are returned
	// when the index holds fewer chunks.
	Search(ctx context.Context, query string, k int) ([]SearchResult, error)

	// Add embeds and appends chunks whose content is not already indexed.
	// Returns the number of chunks added.
	Add(ctx context.Context, chunks []*Chunk) (int, error)

	// Count returns the number of indexed chunks.
	Count(ctx context.Context) (int, error)

	// Close releases the handle.
	Close() error
}

// IndexStore manages the single persisted knowledge index of a deployment.
type IndexStore interface {
	// Rebuild discards any existing index and creates a new one from
	// chunks. Rebuild is all-or-nothing: on error no partial index remains.
	Rebuild(ctx context.Context, chunks []*Chunk) (Index, error)

	// Load opens the persisted index. It returns ok=false and a nil error
	// when no index has been built. An index built with a different
	// embedding model is an error.
	Load(ctx context.Context) (idx Index, ok bool, err error)
}
