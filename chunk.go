package qagent

import (
	"strings"
	"unicode/utf8"
)

// Default chunking policy, in bytes of the document content.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Chunk is an overlapping window of a Document's content, the unit that is
// embedded and retrieved.
type Chunk struct {
	DocumentID string `json:"documentId"`
	SourcePath string `json:"sourcePath"`

	// Sequence is the chunk's position among its document's chunks.
	Sequence int `json:"sequence"`

	Content string `json:"content"`

	// StartOffset is the byte offset of Content within the document's
	// Content, so doc.Content[StartOffset:] begins with this chunk. It is
	// always a rune boundary.
	StartOffset int `json:"startOffset"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.DocumentID == "" {
		return Errorf(EINVALID, "chunk document ID required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// Splitter splits documents into fixed-size overlapping chunks. Boundaries
// are raw offsets, moved back only as far as needed to avoid splitting a
// UTF-8 sequence. Splitting is deterministic.
type Splitter struct {
	Size    int
	Overlap int
}

// NewSplitter returns a Splitter using the default size and overlap.
func NewSplitter() *Splitter {
	return &Splitter{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap}
}

// Split returns the chunks of a single document.
// Whitespace-only windows are dropped.
func (s *Splitter) Split(doc *Document) []*Chunk {
	size, overlap := s.policy()
	content := doc.Content
	if strings.TrimSpace(content) == "" {
		return nil
	}

	chunks := make([]*Chunk, 0, len(content)/(size-overlap)+1)
	seq := 0
	for start := 0; start < len(content); {
		end := runeStart(content, min(start+size, len(content)))
		if end <= start {
			_, n := utf8.DecodeRuneInString(content[start:])
			end = start + n
		}

		if text := content[start:end]; strings.TrimSpace(text) != "" {
			chunks = append(chunks, &Chunk{
				DocumentID:  doc.ID,
				SourcePath:  doc.SourcePath,
				Sequence:    seq,
				Content:     text,
				StartOffset: start,
			})
			seq++
		}

		if end >= len(content) {
			break
		}

		next := runeStart(content, end-overlap)
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// SplitAll splits each document in order and concatenates the results.
func (s *Splitter) SplitAll(docs []*Document) []*Chunk {
	var chunks []*Chunk
	for _, doc := range docs {
		chunks = append(chunks, s.Split(doc)...)
	}
	return chunks
}

func (s *Splitter) policy() (size, overlap int) {
	size, overlap = s.Size, s.Overlap
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	// Ensure overlap doesn't exceed chunk size
	if overlap >= size {
		overlap = size / 4
	}
	return size, overlap
}

// runeStart moves i back to the start of the UTF-8 sequence containing it.
func runeStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
