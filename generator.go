package qagent

import "context"

// Completer is a hosted text-completion service. Each call is independent.
type Completer interface {
	// Complete sends a fully assembled prompt and returns the raw response.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator produces QA artifacts from the knowledge index.
// Output is returned verbatim from the completion service.
type Generator interface {
	// GenerateTestCases returns test cases for a feature or topic.
	GenerateTestCases(ctx context.Context, idx Index, topic string) (string, error)

	// GenerateScript returns a Selenium script automating testCase against
	// the given HTML page.
	GenerateScript(ctx context.Context, idx Index, testCase, html string) (string, error)
}
