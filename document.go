package qagent

import (
	"context"
	"path/filepath"
	"strings"
)

// Kind identifies how a source file is loaded.
type Kind string

// Kind constants. Unknown extensions load as KindFallback, which is read
// exactly like plain text.
const (
	KindText     Kind = "text"
	KindMarkdown Kind = "markdown"
	KindJSON     Kind = "json"
	KindHTML     Kind = "html"
	KindFallback Kind = "fallback"
)

// KindFromPath returns the Kind for a file path based on its extension.
func KindFromPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return KindText
	case ".md", ".markdown":
		return KindMarkdown
	case ".json":
		return KindJSON
	case ".html", ".htm":
		return KindHTML
	default:
		return KindFallback
	}
}

// Document is a normalized source file. Documents are immutable once loaded.
type Document struct {
	ID         string            `json:"id"`
	SourcePath string            `json:"sourcePath"`
	Kind       Kind              `json:"kind"`
	Title      string            `json:"title,omitempty"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if d.SourcePath == "" {
		return Errorf(EINVALID, "document source path required")
	}
	return nil
}

// LoadProgress reports the outcome of loading a single file.
// Error is non-nil when the file was skipped.
type LoadProgress struct {
	Path      string
	Kind      Kind
	Completed int
	Total     int
	Error     error
}

// LoadProgressFunc is called once per input path.
type LoadProgressFunc func(LoadProgress)

// DocumentLoader reads files into Documents.
type DocumentLoader interface {
	// Load returns one Document per readable path, in input order.
	// Files that fail to load are reported through progress and skipped;
	// they never abort the batch. The returned error is non-nil only when
	// ctx is done.
	Load(ctx context.Context, paths []string, progress LoadProgressFunc) ([]*Document, error)
}

// NormalizeResult holds plain text derived from a markup document.
type NormalizeResult struct {
	// Title is the first heading, if any.
	Title string

	// Text is the document content with markup removed.
	Text string
}

// Normalizer converts markup (e.g. Markdown) to plain text.
type Normalizer interface {
	Normalize(src string) (*NormalizeResult, error)
}
