package main

import (
	"fmt"

	"github.com/fwojciec/qagent"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	idx, err := openIndex(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}
	defer idx.Close()

	results, err := qagent.Retrieve(deps.Ctx, idx, c.Query, c.K)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matching chunks.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. %s #%d (score %.3f, offset %d)\n%s\n\n",
			i+1, r.Chunk.SourcePath, r.Chunk.Sequence, r.Score, r.Chunk.StartOffset, r.Chunk.Content)
	}
	return nil
}
