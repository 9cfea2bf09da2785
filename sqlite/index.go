package sqlite

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"github.com/fwojciec/qagent"
	"github.com/fwojciec/qagent/bloom"
)

const (
	// dbName is the database file inside the index directory.
	dbName = "index.db"

	// schemaVersion is bumped whenever the on-disk layout changes.
	schemaVersion = 1

	// embedBatchSize bounds the number of texts per Embed call.
	embedBatchSize = 100

	// filterFalsePositiveRate is the target rate of the dedup prefilter.
	filterFalsePositiveRate = 0.01
)

// Ensure types implement the qagent interfaces at compile time.
var (
	_ qagent.IndexStore = (*IndexStore)(nil)
	_ qagent.Index      = (*Index)(nil)
)

// IndexStore manages the knowledge index persisted in a single directory.
//
// Rebuild takes the store's write lock and closes every handle the store
// has handed out, so no search runs against a directory being replaced.
type IndexStore struct {
	dir       string
	embedder  qagent.Embedder
	logger    *slog.Logger
	removeAll func(path string) error

	mu      sync.RWMutex
	handles map[*Index]struct{}
}

// Option configures an IndexStore.
type Option func(*IndexStore)

// WithLogger sets the logger used for discard retries.
func WithLogger(logger *slog.Logger) Option {
	return func(s *IndexStore) {
		s.logger = logger
	}
}

// WithRemoveAll replaces the function used to delete the index directory.
func WithRemoveAll(fn func(path string) error) Option {
	return func(s *IndexStore) {
		s.removeAll = fn
	}
}

// NewIndexStore creates an IndexStore rooted at dir.
func NewIndexStore(dir string, embedder qagent.Embedder, opts ...Option) *IndexStore {
	s := &IndexStore{
		dir:       filepath.Clean(dir),
		embedder:  embedder,
		logger:    slog.New(slog.DiscardHandler),
		removeAll: os.RemoveAll,
		handles:   make(map[*Index]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the index location.
func (s *IndexStore) Dir() string {
	return s.dir
}

// Rebuild discards the existing index and builds a new one from chunks.
func (s *IndexStore) Rebuild(ctx context.Context, chunks []*qagent.Chunk) (qagent.Index, error) {
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.releaseLocked(); err != nil {
		return nil, qagent.Errorf(qagent.EINTERNAL, "failed to release index handle: %v", err)
	}

	if err := s.discard(s.dir); err != nil {
		return nil, err
	}

	staging := s.dir + ".staging"
	if err := s.discard(staging); err != nil {
		return nil, err
	}

	if err := s.build(ctx, staging, chunks); err != nil {
		_ = s.removeAll(staging)
		return nil, err
	}

	if err := os.Rename(staging, s.dir); err != nil {
		_ = s.removeAll(staging)
		return nil, qagent.Errorf(qagent.EINTERNAL, "failed to commit index: %v", err)
	}

	return s.openLocked(ctx)
}

// Load opens the persisted index. It returns ok=false when none exists.
func (s *IndexStore) Load(ctx context.Context) (qagent.Index, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(filepath.Join(s.dir, dbName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	idx, err := s.openLocked(ctx)
	if err != nil {
		return nil, false, err
	}
	return idx, true, nil
}

// build creates a complete index in dir.
func (s *IndexStore) build(ctx context.Context, dir string, chunks []*qagent.Chunk) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	db := NewDB(filepath.Join(dir, dbName))
	if err := db.Open(); err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.insert(ctx, tx, chunks); err != nil {
		return err
	}

	meta := map[string]string{
		"schema_version":  strconv.Itoa(schemaVersion),
		"embedding_model": s.embedder.Model(),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return db.Close()
}

// insert embeds chunks in batches and writes them in order.
func (s *IndexStore) insert(ctx context.Context, tx *sql.Tx, chunks []*qagent.Chunk) (int, error) {
	n := 0
	for batch := range slices.Chunk(chunks, embedBatchSize) {
		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		vectors, err := s.embedder.Embed(ctx, texts)
		if err != nil {
			return n, err
		}
		if len(vectors) != len(batch) {
			return n, qagent.Errorf(qagent.EINTERNAL, "embedder returned %d vectors for %d texts", len(vectors), len(batch))
		}

		for i, c := range batch {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO chunks (document_id, source_path, sequence, start_offset, content, content_hash, embedding)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, c.DocumentID, c.SourcePath, c.Sequence, c.StartOffset, c.Content, hashContent(c.Content), encodeEmbedding(vectors[i]))
			if err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// openLocked opens the committed index and verifies it was built by this
// schema and embedding model. The caller must hold s.mu.
func (s *IndexStore) openLocked(ctx context.Context) (*Index, error) {
	db := NewDB(filepath.Join(s.dir, dbName))
	if err := db.Open(); err != nil {
		return nil, err
	}

	if err := s.checkMeta(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	filter, err := loadFilter(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	idx := &Index{store: s, db: db, filter: filter}
	s.handles[idx] = struct{}{}
	return idx, nil
}

func (s *IndexStore) checkMeta(ctx context.Context, db *DB) error {
	var version, model string
	err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return qagent.Errorf(qagent.EINVALID, "index at %s has no metadata: rebuild required", s.dir)
	}
	if err != nil {
		return err
	}
	if version != strconv.Itoa(schemaVersion) {
		return qagent.Errorf(qagent.EINVALID, "index schema version %s is not supported: rebuild required", version)
	}

	err = db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'embedding_model'`).Scan(&model)
	if errors.Is(err, sql.ErrNoRows) {
		return qagent.Errorf(qagent.EINVALID, "index at %s has no embedding model: rebuild required", s.dir)
	}
	if err != nil {
		return err
	}
	if model != s.embedder.Model() {
		return qagent.Errorf(qagent.EINVALID, "index built with model %q, current model is %q: rebuild required", model, s.embedder.Model())
	}
	return nil
}

// releaseLocked closes every open handle. The caller must hold s.mu.
func (s *IndexStore) releaseLocked() error {
	var errs []error
	for idx := range s.handles {
		if err := idx.closeLocked(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// discard removes path, retrying once after making its contents writable.
// The location must not exist when discard returns nil.
func (s *IndexStore) discard(path string) error {
	err := s.removeAll(path)
	if err == nil {
		err = absent(path)
	}
	if err == nil {
		return nil
	}

	s.logger.Warn("index removal failed, forcing", "path", path, "error", err)

	forceWritable(path)
	if err := s.removeAll(path); err != nil {
		return qagent.Errorf(qagent.EINTERNAL, "failed to discard index at %s: %v", path, err)
	}
	if err := absent(path); err != nil {
		return qagent.Errorf(qagent.EINTERNAL, "failed to discard index at %s: %v", path, err)
	}
	return nil
}

// absent returns an error unless path does not exist.
func absent(path string) error {
	_, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%s still exists", path)
}

// forceWritable grants owner write permission on everything under path.
func forceWritable(path string) {
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		mode := os.FileMode(0o644)
		if d.IsDir() {
			mode = 0o755
		}
		_ = os.Chmod(p, mode)
		return nil
	})
}

// loadFilter seeds a dedup prefilter with every indexed chunk content.
func loadFilter(ctx context.Context, db *DB) (*bloom.Filter, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return nil, err
	}

	filter := bloom.NewFilter(uint(max(2*n, 1024)), filterFalsePositiveRate)

	rows, err := db.QueryContext(ctx, `SELECT content FROM chunks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		filter.Add(content)
	}
	return filter, rows.Err()
}

// Index is an open handle on a persisted knowledge index.
type Index struct {
	store  *IndexStore
	db     *DB
	filter *bloom.Filter
	closed bool
}

// Search returns the k chunks most similar to query.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]qagent.SearchResult, error) {
	idx.store.mu.RLock()
	defer idx.store.mu.RUnlock()

	if idx.closed {
		return nil, qagent.Errorf(qagent.ECONFLICT, "index handle closed by rebuild")
	}
	if k <= 0 {
		return nil, nil
	}

	vectors, err := idx.store.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, qagent.Errorf(qagent.EINTERNAL, "embedder returned %d vectors for 1 text", len(vectors))
	}
	q := vectors[0]

	rows, err := idx.db.QueryContext(ctx, `
		SELECT document_id, source_path, sequence, start_offset, content, embedding
		FROM chunks
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []qagent.SearchResult
	for rows.Next() {
		var c qagent.Chunk
		var blob []byte
		if err := rows.Scan(&c.DocumentID, &c.SourcePath, &c.Sequence, &c.StartOffset, &c.Content, &blob); err != nil {
			return nil, err
		}

		vec, err := decodeEmbedding(blob)
		if err != nil {
			return nil, qagent.Errorf(qagent.EINTERNAL, "corrupted index: %v", err)
		}
		if len(vec) != len(q) {
			return nil, qagent.Errorf(qagent.EINTERNAL, "corrupted index: vector has %d dimensions, query has %d", len(vec), len(q))
		}

		results = append(results, qagent.SearchResult{Chunk: &c, Score: cosine(q, vec)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows arrive in insertion order, so a stable sort keeps it on ties.
	slices.SortStableFunc(results, func(a, b qagent.SearchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Add embeds and appends chunks whose content is not yet indexed.
func (idx *Index) Add(ctx context.Context, chunks []*qagent.Chunk) (int, error) {
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return 0, err
		}
	}

	idx.store.mu.Lock()
	defer idx.store.mu.Unlock()

	if idx.closed {
		return 0, qagent.Errorf(qagent.ECONFLICT, "index handle closed by rebuild")
	}

	var fresh []*qagent.Chunk
	seen := make(map[string]struct{})
	for _, c := range chunks {
		if _, ok := seen[c.Content]; ok {
			continue
		}
		seen[c.Content] = struct{}{}

		if idx.filter.MayContain(c.Content) {
			exists, err := idx.contains(ctx, c.Content)
			if err != nil {
				return 0, err
			}
			if exists {
				continue
			}
		}
		fresh = append(fresh, c)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	tx, err := idx.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	n, err := idx.store.insert(ctx, tx, fresh)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	for _, c := range fresh {
		idx.filter.Add(c.Content)
	}
	return n, nil
}

// contains reports whether content is already indexed.
func (idx *Index) contains(ctx context.Context, content string) (bool, error) {
	var one int
	err := idx.db.QueryRowContext(ctx, `
		SELECT 1 FROM chunks WHERE content_hash = ? AND content = ? LIMIT 1
	`, hashContent(content), content).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of indexed chunks.
func (idx *Index) Count(ctx context.Context) (int, error) {
	idx.store.mu.RLock()
	defer idx.store.mu.RUnlock()

	if idx.closed {
		return 0, qagent.Errorf(qagent.ECONFLICT, "index handle closed by rebuild")
	}

	var n int
	if err := idx.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close releases the handle. Closing twice is a no-op.
func (idx *Index) Close() error {
	idx.store.mu.Lock()
	defer idx.store.mu.Unlock()
	return idx.closeLocked()
}

func (idx *Index) closeLocked() error {
	if idx.closed {
		return nil
	}
	idx.closed = true
	delete(idx.store.handles, idx)
	return idx.db.Close()
}
