// Package fs provides file-based document loading and upload persistence.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/fwojciec/qagent"
)

// ReadText reads a UTF-8 text file.
func ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", qagent.Errorf(qagent.EINVALID, "%s is not valid UTF-8", path)
	}
	return string(b), nil
}

// SaveFile copies r into destDir under the base name of name and returns
// the written path. destDir is created if needed.
func SaveFile(name string, r io.Reader, destDir string) (string, error) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return "", qagent.Errorf(qagent.EINVALID, "invalid file name %q", name)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(destDir, base)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
