package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/qagent"
	"github.com/fwojciec/qagent/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Loader    qagent.DocumentLoader
	Splitter  *qagent.Splitter
	Store     qagent.IndexStore
	Generator qagent.Generator
	Validator qagent.Validator
	Fetcher   qagent.Fetcher
	Tokens    qagent.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Index      string `default:"${index_dir}" help:"Knowledge index directory (env QAGENT_INDEX)"`
	Embedder   string `enum:"gemini,hash" default:"gemini" help:"Embedding backend (gemini or hash)"`
	Model      string `default:"${model}" help:"Gemini completion model"`
	EmbedModel string `default:"${embed_model}" help:"Gemini embedding model"`
	Render     bool   `help:"Render target pages with headless Chrome"`
	Verbose    bool   `short:"v" help:"Log operations to stderr"`

	Build     BuildCmd     `cmd:"" help:"Build the knowledge index from support documents"`
	Validate  ValidateCmd  `cmd:"" help:"Check an HTML page against its documentation"`
	Testcases TestcasesCmd `cmd:"" help:"Generate test cases for a feature"`
	Script    ScriptCmd    `cmd:"" help:"Generate a Selenium script for a test case"`
	Search    SearchCmd    `cmd:"" help:"Show the chunks retrieved for a query"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Paths   []string `arg:"" help:"Support documents (.txt, .md, .json, .html)"`
	HTML    string   `help:"Target HTML page, ingested with the documents"`
	Append  bool     `short:"a" help:"Add to the existing index instead of rebuilding"`
	Archive string   `help:"Copy inputs into this directory and index the copies"`
	Stats   bool     `help:"Report the corpus size in tokens"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	HTML   string   `arg:"" help:"Target HTML file or URL"`
	Docs   []string `arg:"" optional:"" help:"Documentation files"`
	Strict bool     `help:"Fail when critical issues are found"`
}

// TestcasesCmd is the "testcases" subcommand.
type TestcasesCmd struct {
	Topic string `arg:"" help:"Feature or topic to test"`
}

// ScriptCmd is the "script" subcommand.
type ScriptCmd struct {
	TestCase string `arg:"" name:"test-case" help:"Test case to automate"`
	HTML     string `arg:"" help:"Target HTML file or URL"`
	Output   string `short:"o" help:"Write the script to this file"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Query text"`
	K     int    `short:"k" default:"5" help:"Number of chunks to return"`
}

// openIndex loads the persisted knowledge index or reports that it has
// not been built.
func openIndex(deps *Dependencies) (qagent.Index, error) {
	idx, ok, err := deps.Store.Load(deps.Ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, qagent.Errorf(qagent.ENOTFOUND, "knowledge base not built. Run 'qagent build' first")
	}
	return idx, nil
}

// readTarget returns the HTML of a target page given as a path or URL.
func readTarget(deps *Dependencies, src string) (string, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return deps.Fetcher.Fetch(deps.Ctx, src)
	}
	return fs.ReadText(src)
}

// reportSkipped prints a line for every file the loader could not read.
func reportSkipped(w io.Writer) qagent.LoadProgressFunc {
	return func(p qagent.LoadProgress) {
		if p.Error != nil {
			fmt.Fprintf(w, "skipped %s: %s\n", p.Path, qagent.ErrorMessage(p.Error))
		}
	}
}
