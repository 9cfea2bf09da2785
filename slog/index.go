package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/qagent"
)

// Ensure types implement the qagent interfaces.
var (
	_ qagent.IndexStore = (*LoggingIndexStore)(nil)
	_ qagent.Index      = (*LoggingIndex)(nil)
)

// LoggingIndexStore wraps an IndexStore with logging. Handles it returns
// are wrapped too.
type LoggingIndexStore struct {
	next   qagent.IndexStore
	logger *slog.Logger
}

// NewLoggingIndexStore creates a new LoggingIndexStore.
func NewLoggingIndexStore(next qagent.IndexStore, logger *slog.Logger) *LoggingIndexStore {
	return &LoggingIndexStore{next: next, logger: logger}
}

// Rebuild delegates to the wrapped store and logs the rebuild.
func (s *LoggingIndexStore) Rebuild(ctx context.Context, chunks []*qagent.Chunk) (idx qagent.Index, err error) {
	defer func(begin time.Time) {
		s.logger.Info("index rebuild",
			"chunks", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	idx, err = s.next.Rebuild(ctx, chunks)
	if err != nil {
		return nil, err
	}
	return NewLoggingIndex(idx, s.logger), nil
}

// Load delegates to the wrapped store and logs whether an index was found.
func (s *LoggingIndexStore) Load(ctx context.Context) (idx qagent.Index, ok bool, err error) {
	defer func(begin time.Time) {
		s.logger.Info("index load",
			"found", ok,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	idx, ok, err = s.next.Load(ctx)
	if err != nil || !ok {
		return nil, ok, err
	}
	return NewLoggingIndex(idx, s.logger), true, nil
}

// LoggingIndex wraps an Index with logging.
type LoggingIndex struct {
	next   qagent.Index
	logger *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex.
func NewLoggingIndex(next qagent.Index, logger *slog.Logger) *LoggingIndex {
	return &LoggingIndex{next: next, logger: logger}
}

// Search delegates to the wrapped index and logs the result size and the
// best score.
func (i *LoggingIndex) Search(ctx context.Context, query string, k int) (results []qagent.SearchResult, err error) {
	defer func(begin time.Time) {
		var top float32
		if len(results) > 0 {
			top = results[0].Score
		}
		i.logger.Info("index search",
			"query_bytes", len(query),
			"k", k,
			"results", len(results),
			"top_score", top,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Search(ctx, query, k)
}

// Add delegates to the wrapped index and logs how many chunks were new.
func (i *LoggingIndex) Add(ctx context.Context, chunks []*qagent.Chunk) (added int, err error) {
	defer func(begin time.Time) {
		i.logger.Info("index add",
			"chunks", len(chunks),
			"added", added,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Add(ctx, chunks)
}

// Count delegates to the wrapped index.
func (i *LoggingIndex) Count(ctx context.Context) (int, error) {
	return i.next.Count(ctx)
}

// Close delegates to the wrapped index.
func (i *LoggingIndex) Close() error {
	return i.next.Close()
}
