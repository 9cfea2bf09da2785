package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/qagent"
	"github.com/fwojciec/qagent/fs"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	paths := append([]string{}, c.Paths...)
	if c.HTML != "" {
		paths = append(paths, c.HTML)
	}

	if c.Archive != "" {
		archived, err := archive(paths, c.Archive, reportSkipped(deps.Stderr))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
			return err
		}
		paths = archived
	}

	docs, err := deps.Loader.Load(deps.Ctx, paths, reportSkipped(deps.Stderr))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no documents could be loaded")
		return qagent.Errorf(qagent.EINVALID, "no documents could be loaded")
	}

	chunks := deps.Splitter.SplitAll(docs)

	idx, added, err := c.index(deps, chunks)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}
	defer idx.Close()

	total, err := idx.Count(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}

	if c.Append {
		fmt.Fprintf(deps.Stdout, "Added %d new chunks from %d documents (%d chunks indexed)\n", added, len(docs), total)
	} else {
		fmt.Fprintf(deps.Stdout, "Indexed %d chunks from %d documents\n", total, len(docs))
	}

	if deps.Tokens != nil {
		c.printStats(deps, docs)
	}
	return nil
}

// index rebuilds the index from chunks, or appends to the existing one
// when requested. It returns the number of chunks written.
func (c *BuildCmd) index(deps *Dependencies, chunks []*qagent.Chunk) (qagent.Index, int, error) {
	if c.Append {
		idx, ok, err := deps.Store.Load(deps.Ctx)
		if err != nil {
			return nil, 0, err
		}
		if ok {
			added, err := idx.Add(deps.Ctx, chunks)
			if err != nil {
				idx.Close()
				return nil, 0, err
			}
			return idx, added, nil
		}
	}

	idx, err := deps.Store.Rebuild(deps.Ctx, chunks)
	if err != nil {
		return nil, 0, err
	}
	return idx, len(chunks), nil
}

func (c *BuildCmd) printStats(deps *Dependencies, docs []*qagent.Document) {
	var tokens, bytes int
	for _, doc := range docs {
		n, err := deps.Tokens.CountTokens(deps.Ctx, doc.Content)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "warning: token count failed for %s: %s\n", doc.SourcePath, qagent.ErrorMessage(err))
			return
		}
		tokens += n
		bytes += len(doc.Content)
	}
	fmt.Fprintf(deps.Stdout, "Corpus: %s, %s\n", qagent.FormatTokens(tokens), qagent.FormatBytes(bytes))
}

// archive copies every readable path into dir and returns the copies'
// paths. Unreadable inputs are reported and left out. Inputs sharing a
// base name get a numeric suffix so no copy overwrites another.
func archive(paths []string, dir string, progress qagent.LoadProgressFunc) ([]string, error) {
	out := make([]string, 0, len(paths))
	used := make(map[string]bool)
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			progress(qagent.LoadProgress{Path: path, Kind: qagent.KindFromPath(path), Error: err})
			continue
		}

		name := archiveName(filepath.Base(path), used)
		saved, err := fs.SaveFile(name, f, dir)
		f.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}
	return out, nil
}

// archiveName returns base, or base with "-N" before its extension when
// base is already taken, and marks the result as used.
func archiveName(base string, used map[string]bool) string {
	name := base
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for n := 2; used[name]; n++ {
		name = fmt.Sprintf("%s-%d%s", stem, n, ext)
	}
	used[name] = true
	return name
}
