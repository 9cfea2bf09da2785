package main

import (
	"fmt"

	"github.com/fwojciec/qagent"
)

// Run executes the testcases command.
func (c *TestcasesCmd) Run(deps *Dependencies) error {
	idx, err := openIndex(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}
	defer idx.Close()

	out, err := deps.Generator.GenerateTestCases(deps.Ctx, idx, c.Topic)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, out)
	return nil
}
