// Package rag implements test case and script generation grounded in the
// knowledge index.
package rag

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/fwojciec/qagent"
)

// MasterPrompt holds the standing instructions shared by every task.
//
//go:embed prompts/qa_architect_master.txt
var MasterPrompt string

// Ensure Generator implements qagent.Generator at compile time.
var _ qagent.Generator = (*Generator)(nil)

// Generator implements qagent.Generator with a single completion call per
// task. Results are not cached and failures are not retried.
type Generator struct {
	completer qagent.Completer
}

// NewGenerator creates a new Generator.
func NewGenerator(completer qagent.Completer) *Generator {
	return &Generator{completer: completer}
}

// GenerateTestCases retrieves context for topic and returns the model's
// test cases verbatim.
func (g *Generator) GenerateTestCases(ctx context.Context, idx qagent.Index, topic string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", qagent.Errorf(qagent.EINVALID, "topic required")
	}

	results, err := qagent.Retrieve(ctx, idx, topic, qagent.TestCaseContextSize)
	if err != nil {
		return "", err
	}

	return g.completer.Complete(ctx, BuildTestCasePrompt(topic, results))
}

// GenerateScript retrieves business rules for testCase and returns the
// model's automation script verbatim. The HTML is always sent in full.
func (g *Generator) GenerateScript(ctx context.Context, idx qagent.Index, testCase, html string) (string, error) {
	if strings.TrimSpace(testCase) == "" {
		return "", qagent.Errorf(qagent.EINVALID, "test case required")
	}
	if strings.TrimSpace(html) == "" {
		return "", qagent.Errorf(qagent.EINVALID, "HTML content required")
	}

	results, err := qagent.Retrieve(ctx, idx, testCase, qagent.ScriptContextSize)
	if err != nil {
		return "", err
	}

	return g.completer.Complete(ctx, BuildScriptPrompt(testCase, html, results))
}

// BuildTestCasePrompt assembles the test case generation prompt.
func BuildTestCasePrompt(topic string, results []qagent.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(MasterPrompt)
	sb.WriteString("\n\n---\n\n")
	sb.WriteString("CURRENT TASK: PHASE 1 - TEST CASE GENERATION\n\n")
	fmt.Fprintf(&sb, "User Query / Feature: \"%s\"\n\n", topic)
	sb.WriteString("Context from Documentation:\n")
	sb.WriteString(FormatContext(results))
	sb.WriteString("\nGenerate the test cases now, adhering strictly to the \"TEST CASE OUTPUT FORMAT\" and \"Requirements\" defined above.\n")
	return sb.String()
}

// BuildScriptPrompt assembles the Selenium script generation prompt.
func BuildScriptPrompt(testCase, html string, results []qagent.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(MasterPrompt)
	sb.WriteString("\n\n---\n\n")
	sb.WriteString("CURRENT TASK: PHASE 2 - SELENIUM SCRIPT GENERATION\n\n")
	sb.WriteString("Test Case to Automate:\n")
	sb.WriteString(testCase)
	sb.WriteString("\n\nTarget HTML Content:\n")
	sb.WriteString(html)
	sb.WriteString("\n\nAdditional Context (Business Rules):\n")
	sb.WriteString(FormatContext(results))
	sb.WriteString("\nGenerate the Python Selenium script now, adhering strictly to the \"Script Requirements\" and template defined above.\n")
	return sb.String()
}

// FormatContext renders retrieved chunks most similar first.
func FormatContext(results []qagent.SearchResult) string {
	var sb strings.Builder
	sb.WriteString("<documents>\n")
	for i, r := range results {
		sb.WriteString("<document>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<source>%s</source>\n", r.Chunk.SourcePath)
		fmt.Fprintf(&sb, "<content>%s</content>\n", r.Chunk.Content)
		sb.WriteString("</document>\n")
	}
	sb.WriteString("</documents>\n")
	return sb.String()
}
