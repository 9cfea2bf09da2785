package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/qagent"
	"github.com/fwojciec/qagent/fs"
)

// Run executes the script command.
func (c *ScriptCmd) Run(deps *Dependencies) error {
	html, err := readTarget(deps, c.HTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}

	idx, err := openIndex(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}
	defer idx.Close()

	out, err := deps.Generator.GenerateScript(deps.Ctx, idx, c.TestCase, html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}

	if c.Output == "" {
		fmt.Fprintln(deps.Stdout, out)
		return nil
	}

	path, err := fs.SaveFile(filepath.Base(c.Output), strings.NewReader(out), filepath.Dir(c.Output))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return nil
}
