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

func loadedStore(idx qagent.Index) *mock.IndexStore {
	return &mock.IndexStore{
		LoadFn: func(context.Context) (qagent.Index, bool, error) {
			return idx, true, nil
		},
	}
}

func absentStore() *mock.IndexStore {
	return &mock.IndexStore{
		LoadFn: func(context.Context) (qagent.Index, bool, error) {
			return nil, false, nil
		},
	}
}

func TestTestcasesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints generated test cases", func(t *testing.T) {
		t.Parallel()

		closed := false
		idx := &mock.Index{CloseFn: func() error { closed = true; return nil }}
		generator := &mock.Generator{
			GenerateTestCasesFn: func(_ context.Context, got qagent.Index, topic string) (string, error) {
				assert.Same(t, idx, got)
				return "| TC-001 | " + topic + " |", nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Store:     loadedStore(idx),
			Generator: generator,
		}

		err := (&main.TestcasesCmd{Topic: "discount code"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "| TC-001 | discount code |\n", stdout.String())
		assert.True(t, closed)
	})

	t.Run("reports missing knowledge base", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Store:  absentStore(),
		}

		err := (&main.TestcasesCmd{Topic: "discount code"}).Run(deps)

		assert.Equal(t, qagent.ENOTFOUND, qagent.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: knowledge base not built")
	})

	t.Run("shows generation errors directly", func(t *testing.T) {
		t.Parallel()

		generator := &mock.Generator{
			GenerateTestCasesFn: func(context.Context, qagent.Index, string) (string, error) {
				return "", qagent.Errorf(qagent.EUNAVAILABLE, "quota exceeded")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Store:     loadedStore(&mock.Index{}),
			Generator: generator,
		}

		err := (&main.TestcasesCmd{Topic: "discount"}).Run(deps)

		assert.Equal(t, qagent.EUNAVAILABLE, qagent.ErrorCode(err))
		assert.Equal(t, "error: quota exceeded\n", stderr.String())
	})
}
