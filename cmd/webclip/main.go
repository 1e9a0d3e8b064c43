package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webclip"
	"github.com/fwojciec/webclip/clip"
	"github.com/fwojciec/webclip/goquery"
	"github.com/fwojciec/webclip/htmltomarkdown"
	wchttp "github.com/fwojciec/webclip/http"
	"github.com/fwojciec/webclip/readability"
	wcslog "github.com/fwojciec/webclip/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher retrieves page HTML. Set before calling Run() to replace
	// the default HTTP fetcher in end-to-end tests.
	Fetcher webclip.Fetcher

	// Notes saves clips. Set before calling Run() to replace the HTTP
	// notes client in end-to-end tests.
	Notes webclip.NoteService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webclip"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webclip --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Wire the extraction pipeline. Every command that touches a page
	// shares the same registry and dispatcher.
	extractors := []webclip.Extractor{
		goquery.NewRedditExtractor(),
		goquery.NewYouTubeExtractor(),
		goquery.NewTwitterExtractor(),
		goquery.NewMediumExtractor(),
		goquery.NewGitHubExtractor(),
		goquery.NewStackOverflowExtractor(),
		goquery.NewWikipediaExtractor(),
		goquery.NewAmazonExtractor(),
		goquery.NewIMDbExtractor(),
	}
	if logger != nil {
		for i, e := range extractors {
			extractors[i] = wcslog.NewLoggingExtractor(e, logger)
		}
	}
	deps.Registry = clip.NewRegistry(extractors...)

	converter := goquery.NewConverter()
	var dispatcher webclip.Dispatcher = &clip.Dispatcher{
		Registry:    deps.Registry,
		Readability: readability.NewExtractor(htmltomarkdown.NewConverter()),
		Fallback:    goquery.NewFallbackExtractor(),
		FullPage:    goquery.NewFullPageExtractor(),
		Converter:   converter,
	}
	if logger != nil {
		dispatcher = wcslog.NewLoggingDispatcher(dispatcher, logger)
	}
	deps.Dispatcher = dispatcher

	// Wire command-specific dependencies based on command
	if cmd == "clip" {
		if m.Fetcher == nil {
			m.Fetcher = wchttp.NewFetcher()
		}
		fetcher := m.Fetcher
		if logger != nil {
			fetcher = wcslog.NewLoggingFetcher(fetcher, logger)
		}

		var notes webclip.NoteService
		if cli.Clip.Save {
			notes, err = m.noteService(cli, stderr)
			if err != nil {
				return err
			}
			if logger != nil {
				notes = wcslog.NewLoggingNoteService(notes, logger)
			}
		}

		deps.Clipper = &clip.Clipper{
			Fetcher:     fetcher,
			Dispatcher:  dispatcher,
			Notes:       notes,
			RateLimiter: clip.NewDomainLimiter(cli.Clip.RPS),
			Concurrency: cli.Clip.Concurrency,
			Mode:        webclip.Mode(cli.Clip.Mode),
		}
	}

	if cmd == "categories" {
		deps.Notes, err = m.noteService(cli, stderr)
		if err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// noteService returns the configured notes client, requiring an API key
// when the default HTTP client is used.
func (m *Main) noteService(cli *CLI, stderr io.Writer) (webclip.NoteService, error) {
	if m.Notes != nil {
		return m.Notes, nil
	}
	if cli.APIKey == "" {
		fmt.Fprintln(stderr, "Hint: Set WEBCLIP_API_KEY or pass --api-key")
		return nil, fmt.Errorf("notes API key not set")
	}
	m.Notes = wchttp.NewNoteService(cli.APIURL, cli.APIKey)
	return m.Notes, nil
}
