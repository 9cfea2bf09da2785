package mock

import (
	"context"

	"github.com/fwojciec/qagent"
)

var _ qagent.Index = (*Index)(nil)

// Index is a mock implementation of qagent.Index.
type Index struct {
	SearchFn func(ctx context.Context, query string, k int) ([]qagent.SearchResult, error)
	AddFn    func(ctx context.Context, chunks []*qagent.Chunk) (int, error)
	CountFn  func(ctx context.Context) (int, error)
	CloseFn  func() error
}

func (i *Index) Search(ctx context.Context, query string, k int) ([]qagent.SearchResult, error) {
	return i.SearchFn(ctx, query, k)
}

func (i *Index) Add(ctx context.Context, chunks []*qagent.Chunk) (int, error) {
	return i.AddFn(ctx, chunks)
}

func (i *Index) Count(ctx context.Context) (int, error) {
	return i.CountFn(ctx)
}

func (i *Index) Close() error {
	if i.CloseFn == nil {
		return nil
	}
	return i.CloseFn()
}

var _ qagent.IndexStore = (*IndexStore)(nil)

// IndexStore is a mock implementation of qagent.IndexStore.
type IndexStore struct {
	RebuildFn func(ctx context.Context, chunks []*qagent.Chunk) (qagent.Index, error)
	LoadFn    func(ctx context.Context) (qagent.Index, bool, error)
}

func (s *IndexStore) Rebuild(ctx context.Context, chunks []*qagent.Chunk) (qagent.Index, error) {
	return s.RebuildFn(ctx, chunks)
}

func (s *IndexStore) Load(ctx context.Context) (qagent.Index, bool, error) {
	return s.LoadFn(ctx)
}
