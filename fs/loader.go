package fs

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/qagent"
	"github.com/google/uuid"
)

// Ensure Loader implements qagent.DocumentLoader at compile time.
var _ qagent.DocumentLoader = (*Loader)(nil)

// Loader reads documents from the local filesystem, dispatching on file
// extension. Unknown extensions are read as plain text.
type Loader struct {
	// Normalizer strips Markdown to plain text. When nil, Markdown is
	// loaded unchanged.
	Normalizer qagent.Normalizer

	// Extractors are tried in order to pull the main content out of HTML
	// documents. The first non-empty result wins.
	Extractors []qagent.Extractor

	// Converter turns extracted HTML into Markdown.
	Converter qagent.Converter

	// Logger receives a warning per skipped file. Defaults to discarding.
	Logger *slog.Logger
}

// Load returns one Document per loadable path, in input order.
func (l *Loader) Load(ctx context.Context, paths []string, progress qagent.LoadProgressFunc) ([]*qagent.Document, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	docs := make([]*qagent.Document, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		kind := qagent.KindFromPath(path)
		doc, err := l.load(path, kind)
		if err != nil {
			logger.Warn("skipping document", "path", path, "kind", kind, "err", err)
		} else {
			docs = append(docs, doc)
		}

		if progress != nil {
			progress(qagent.LoadProgress{
				Path:      path,
				Kind:      kind,
				Completed: i + 1,
				Total:     len(paths),
				Error:     err,
			})
		}
	}
	return docs, nil
}

func (l *Loader) load(path string, kind qagent.Kind) (*qagent.Document, error) {
	raw, err := ReadText(path)
	if err != nil {
		return nil, err
	}

	doc := &qagent.Document{
		ID:         uuid.New().String(),
		SourcePath: path,
		Kind:       kind,
		Content:    raw,
		Metadata:   map[string]string{"source": path},
	}

	switch kind {
	case qagent.KindMarkdown:
		err = l.loadMarkdown(doc)
	case qagent.KindHTML:
		l.loadHTML(doc)
	case qagent.KindJSON:
		// JSON is indexed as text; structure is left to the retriever.
		doc.Metadata["format"] = "json"
	default:
		doc.Metadata["format"] = "text"
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (l *Loader) loadMarkdown(doc *qagent.Document) error {
	doc.Metadata["format"] = "markdown"
	if l.Normalizer == nil {
		return nil
	}
	result, err := l.Normalizer.Normalize(doc.Content)
	if err != nil {
		return err
	}
	doc.Title = result.Title
	doc.Content = result.Text
	return nil
}

// loadHTML replaces the raw markup with Markdown of the main content.
// When extraction or conversion fails the raw HTML is kept.
func (l *Loader) loadHTML(doc *qagent.Document) {
	doc.Metadata["format"] = "html"
	if l.Converter == nil || strings.TrimSpace(doc.Content) == "" {
		return
	}

	for _, extractor := range l.Extractors {
		result, err := extractor.Extract(doc.Content)
		if err != nil || strings.TrimSpace(result.ContentHTML) == "" {
			continue
		}
		md, err := l.Converter.Convert(result.ContentHTML)
		if err != nil || strings.TrimSpace(md) == "" {
			continue
		}
		doc.Title = result.Title
		doc.Content = md
		doc.Metadata["format"] = "markdown"
		return
	}
}
