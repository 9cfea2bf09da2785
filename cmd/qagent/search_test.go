package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/qagent"
	main "github.com/fwojciec/qagent/cmd/qagent"
	"github.com/fwojciec/qagent/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints ranked chunks", func(t *testing.T) {
		t.Parallel()

		var gotK int
		idx := &mock.Index{
			SearchFn: func(_ context.Context, _ string, k int) ([]qagent.SearchResult, error) {
				gotK = k
				return []qagent.SearchResult{
					{Chunk: &qagent.Chunk{SourcePath: "specs.md", Sequence: 2, StartOffset: 1600, Content: "SAVE15"}, Score: 0.91},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Store:  loadedStore(idx),
		}

		err := (&main.SearchCmd{Query: "discount", K: 3}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 3, gotK)
		assert.Equal(t, "1. specs.md #2 (score 0.910, offset 1600)\nSAVE15\n\n", stdout.String())
	})

	t.Run("reports no matches", func(t *testing.T) {
		t.Parallel()

		idx := &mock.Index{
			SearchFn: func(context.Context, string, int) ([]qagent.SearchResult, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Store:  loadedStore(idx),
		}

		err := (&main.SearchCmd{Query: "discount", K: 5}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "No matching chunks.\n", stdout.String())
	})
}
