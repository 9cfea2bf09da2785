package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/qagent"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	html, err := readTarget(deps, c.HTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}

	docs, err := deps.Loader.Load(deps.Ctx, c.Docs, reportSkipped(deps.Stderr))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}

	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = doc.Content
	}

	findings := deps.Validator.Validate(html, strings.Join(contents, "\n\n"))
	fmt.Fprintln(deps.Stdout, qagent.FormatReport(findings))

	if groups := qagent.GroupFindings(findings); c.Strict && len(groups.Errors) > 0 {
		err := qagent.Errorf(qagent.EINVALID, "%d critical issues found", len(groups.Errors))
		fmt.Fprintf(deps.Stderr, "error: %s\n", qagent.ErrorMessage(err))
		return err
	}
	return nil
}
