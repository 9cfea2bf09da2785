package mock

import (
	"context"

	"github.com/fwojciec/qagent"
)

var _ qagent.Completer = (*Completer)(nil)

// Completer is a mock implementation of qagent.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteFn(ctx, prompt)
}

var _ qagent.Generator = (*Generator)(nil)

// Generator is a mock implementation of qagent.Generator.
type Generator struct {
	GenerateTestCasesFn func(ctx context.Context, idx qagent.Index, topic string) (string, error)
	GenerateScriptFn    func(ctx context.Context, idx qagent.Index, testCase, html string) (string, error)
}

func (g *Generator) GenerateTestCases(ctx context.Context, idx qagent.Index, topic string) (string, error) {
	return g.GenerateTestCasesFn(ctx, idx, topic)
}

func (g *Generator) GenerateScript(ctx context.Context, idx qagent.Index, testCase, html string) (string, error) {
	return g.GenerateScriptFn(ctx, idx, testCase, html)
}
