package fs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/qagent"
	"github.com/fwojciec/qagent/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	t.Parallel()

	t.Run("reads utf-8 content", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.md", "Ünïcode ✓")

		text, err := fs.ReadText(path)

		require.NoError(t, err)
		assert.Equal(t, "Ünïcode ✓", text)
	})

	t.Run("rejects invalid utf-8", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.txt", "\xff\xfe")

		_, err := fs.ReadText(path)

		assert.Equal(t, qagent.EINVALID, qagent.ErrorCode(err))
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.ReadText(filepath.Join(t.TempDir(), "nope.txt"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSaveFile(t *testing.T) {
	t.Parallel()

	t.Run("writes into destination directory", func(t *testing.T) {
		t.Parallel()

		dest := filepath.Join(t.TempDir(), "uploads")

		path, err := fs.SaveFile("checkout.html", strings.NewReader("<html></html>"), dest)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dest, "checkout.html"), path)
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", string(b))
	})

	t.Run("strips directory components from the name", func(t *testing.T) {
		t.Parallel()

		dest := t.TempDir()

		path, err := fs.SaveFile("../../etc/passwd", strings.NewReader("x"), dest)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dest, "passwd"), path)
	})
}
