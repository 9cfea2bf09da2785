package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/qagent"
	"github.com/fwojciec/qagent/fs"
	"github.com/fwojciec/qagent/gemini"
	"github.com/fwojciec/qagent/goldmark"
	"github.com/fwojciec/qagent/goquery"
	"github.com/fwojciec/qagent/htmltomarkdown"
	qhttp "github.com/fwojciec/qagent/http"
	"github.com/fwojciec/qagent/rag"
	"github.com/fwojciec/qagent/readability"
	"github.com/fwojciec/qagent/rod"
	qslog "github.com/fwojciec/qagent/slog"
	"github.com/fwojciec/qagent/sqlite"
	"github.com/fwojciec/qagent/trafilatura"
	"github.com/fwojciec/qagent/xxhash"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// embedInterval paces requests to the Gemini embedding API.
const embedInterval = 250 * time.Millisecond

// Main represents the program.
type Main struct {
	// Knowledge index directory. Set before calling Run().
	IndexDir string

	// Getenv looks up credentials. Defaults to os.Getenv.
	Getenv func(string) string

	// Services for end-to-end testing. When nil they are built from flags.
	Completer qagent.Completer
	Embedder  qagent.Embedder
	Fetcher   qagent.Fetcher
	Tokens    qagent.TokenCounter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		IndexDir: defaultIndexDir(),
		Getenv:   os.Getenv,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("qagent"),
		kong.Description("Generate grounded test cases and Selenium scripts from support documents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
		kong.Vars{
			"index_dir":   m.IndexDir,
			"model":       gemini.DefaultModel,
			"embed_model": gemini.DefaultEmbedModel,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'qagent --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return fail(stderr, err)
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := newLogger(cli.Verbose, stderr)

	needsCompleter := cmd == "testcases" || cmd == "script"
	needsEmbedder := cmd != "validate"

	// Credentials are checked before any pipeline work starts.
	var client *genai.Client
	if (needsCompleter && m.Completer == nil) || (needsEmbedder && m.Embedder == nil && cli.Embedder == "gemini") {
		apiKey := m.apiKey()
		if apiKey == "" {
			return fail(stderr, qagent.Errorf(qagent.EINVALID, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey"))
		}

		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fail(stderr, fmt.Errorf("failed to connect to Gemini API: %w", err))
		}
	}

	deps.Loader = &fs.Loader{
		Normalizer: goldmark.NewNormalizer(),
		Extractors: []qagent.Extractor{
			trafilatura.NewExtractor(),
			readability.NewExtractor(),
		},
		Converter: htmltomarkdown.NewConverter(),
		Logger:    logger,
	}
	deps.Splitter = qagent.NewSplitter()
	deps.Validator = qslog.NewLoggingValidator(goquery.NewValidator(), logger)

	if needsEmbedder {
		embedder := m.Embedder
		if embedder == nil {
			switch cli.Embedder {
			case "hash":
				embedder = xxhash.NewEmbedder(xxhash.DefaultDimensions)
			default:
				embedder = gemini.NewEmbedder(client.Models, cli.EmbedModel, rate.NewLimiter(rate.Every(embedInterval), 1))
			}
		}
		embedder = qslog.NewLoggingEmbedder(embedder, logger)

		store := sqlite.NewIndexStore(cli.Index, embedder, sqlite.WithLogger(logger))
		deps.Store = qslog.NewLoggingIndexStore(store, logger)
	}

	if needsCompleter {
		completer := m.Completer
		if completer == nil {
			completer = gemini.NewCompleter(client, cli.Model)
		}
		deps.Generator = rag.NewGenerator(qslog.NewLoggingCompleter(completer, logger))
	}

	if cmd == "validate" || cmd == "script" {
		fetcher := m.Fetcher
		if fetcher == nil {
			if cli.Render {
				f, err := rod.NewFetcher()
				if err != nil {
					fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
					return fail(stderr, fmt.Errorf("failed to start browser: %w", err))
				}
				fetcher = f
			} else {
				fetcher = qhttp.NewFetcher()
			}
		}
		fetcher = qslog.NewLoggingFetcher(qhttp.NewRetryFetcher(fetcher, nil, logger), logger)
		defer fetcher.Close()
		deps.Fetcher = fetcher
	}

	if cmd == "build" && cli.Build.Stats {
		deps.Tokens = m.Tokens
		if deps.Tokens == nil {
			tc, err := gemini.NewTokenCounter(gemini.DefaultModel)
			if err != nil {
				logger.Warn("token counting unavailable", "err", err)
			} else {
				deps.Tokens = tc
			}
		}
	}

	return kongCtx.Run(deps)
}

// fail prints err the way commands do and returns it.
func fail(w io.Writer, err error) error {
	fmt.Fprintf(w, "error: %s\n", qagent.ErrorMessage(err))
	return err
}

// apiKey returns the Gemini credential, preferring GEMINI_API_KEY.
func (m *Main) apiKey() string {
	getenv := m.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if key := getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return getenv("GOOGLE_API_KEY")
}

// newLogger returns a debug-level text logger on w when verbose is set,
// otherwise a logger that discards everything.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultIndexDir() string {
	if dir := os.Getenv("QAGENT_INDEX"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".qagent", "index")
	}
	return filepath.Join(home, ".qagent", "index")
}
