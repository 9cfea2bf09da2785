package qagent_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/qagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitter_Split(t *testing.T) {
	t.Parallel()

	t.Run("short document yields one chunk", func(t *testing.T) {
		t.Parallel()

		doc := &qagent.Document{ID: "doc-1", SourcePath: "a.txt", Content: "Discount code SAVE15 gives 15% off."}

		chunks := qagent.NewSplitter().Split(doc)

		require.Len(t, chunks, 1)
		assert.Equal(t, "doc-1", chunks[0].DocumentID)
		assert.Equal(t, "a.txt", chunks[0].SourcePath)
		assert.Equal(t, 0, chunks[0].Sequence)
		assert.Equal(t, 0, chunks[0].StartOffset)
		assert.Equal(t, doc.Content, chunks[0].Content)
	})

	t.Run("empty document yields no chunks", func(t *testing.T) {
		t.Parallel()

		doc := &qagent.Document{ID: "doc-1", Content: "  \n\t "}

		assert.Empty(t, qagent.NewSplitter().Split(doc))
	})

	t.Run("windows overlap by the configured amount", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("abcdefghij", 250) // 2500 bytes
		doc := &qagent.Document{ID: "doc-1", Content: content}

		chunks := qagent.NewSplitter().Split(doc)

		require.Len(t, chunks, 3)
		assert.Equal(t, []int{0, 800, 1600}, []int{chunks[0].StartOffset, chunks[1].StartOffset, chunks[2].StartOffset})
		assert.Len(t, chunks[0].Content, 1000)
		assert.Len(t, chunks[1].Content, 1000)
		assert.Len(t, chunks[2].Content, 900)
		assert.Equal(t, chunks[0].Content[800:], chunks[1].Content[:200])
	})

	t.Run("start offsets point into the document", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		for i := 0; i < 300; i++ {
			sb.WriteString("Line about shipping rules and payment methods.\n")
		}
		doc := &qagent.Document{ID: "doc-1", Content: sb.String()}

		chunks := qagent.NewSplitter().Split(doc)

		require.NotEmpty(t, chunks)
		for i, c := range chunks {
			assert.Equal(t, i, c.Sequence)
			assert.Equal(t, c.Content, doc.Content[c.StartOffset:c.StartOffset+len(c.Content)])
		}
	})

	t.Run("never splits a multi-byte rune", func(t *testing.T) {
		t.Parallel()

		doc := &qagent.Document{ID: "doc-1", Content: strings.Repeat("é€", 700)}

		chunks := qagent.NewSplitter().Split(doc)

		require.Greater(t, len(chunks), 1)
		for _, c := range chunks {
			assert.True(t, utf8.ValidString(c.Content))
			assert.LessOrEqual(t, len(c.Content), qagent.DefaultChunkSize)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		doc := &qagent.Document{ID: "doc-1", Content: strings.Repeat("The Apply button validates the code. ", 120)}
		s := qagent.NewSplitter()

		first := s.Split(doc)
		second := s.Split(doc)

		assert.Equal(t, first, second)
	})

	t.Run("overlap larger than size falls back to a quarter of size", func(t *testing.T) {
		t.Parallel()

		doc := &qagent.Document{ID: "doc-1", Content: strings.Repeat("x", 30)}
		s := &qagent.Splitter{Size: 10, Overlap: 20}

		chunks := s.Split(doc)

		require.NotEmpty(t, chunks)
		assert.Equal(t, 8, chunks[1].StartOffset)
	})
}

func TestSplitter_SplitAll(t *testing.T) {
	t.Parallel()

	docs := []*qagent.Document{
		{ID: "doc-1", Content: "first"},
		{ID: "doc-2", Content: ""},
		{ID: "doc-3", Content: "third"},
	}

	chunks := qagent.NewSplitter().SplitAll(docs)

	require.Len(t, chunks, 2)
	assert.Equal(t, "doc-1", chunks[0].DocumentID)
	assert.Equal(t, "doc-3", chunks[1].DocumentID)
}
