package qagent

import "context"

// Number of chunks retrieved per generation task. Script generation works
// mostly from the HTML and only needs business rules from the context.
const (
	TestCaseContextSize = 5
	ScriptContextSize   = 3
)

// Retrieve returns the k chunks of idx most similar to query.
// A nil idx means the knowledge base has not been built.
func Retrieve(ctx context.Context, idx Index, query string, k int) ([]SearchResult, error) {
	if idx == nil {
		return nil, Errorf(ENOTFOUND, "knowledge base not built")
	}
	return idx.Search(ctx, query, k)
}
