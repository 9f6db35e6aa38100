package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/firecrawl"
	"github.com/fwojciec/repodoc/fs"
	"github.com/fwojciec/repodoc/gemini"
	"github.com/fwojciec/repodoc/github"
	rdhttp "github.com/fwojciec/repodoc/http"
	rdslog "github.com/fwojciec/repodoc/slog"
	"github.com/fwojciec/repodoc/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Now returns the current time. Overridden in tests.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Now: time.Now}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("repodoc"),
		kong.Description("Consolidate documentation from a GitHub repository or website into one Markdown file."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'repodoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = defaultDBPath()
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set REPODOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	keys := rdslog.NewLoggingKeyStore(sqlite.NewKeyStore(m.DB), logger)
	deps.Exports = sqlite.NewExportService(m.DB)

	// Key checks are single requests without retries.
	firecrawlClient := firecrawl.NewClient(
		&http.Client{Timeout: rdhttp.DefaultFetchTimeout},
		firecrawl.WithBaseURL(cli.FirecrawlURL),
	)
	website := firecrawl.NewProvider(firecrawlClient, keys,
		firecrawl.WithPollInterval(cli.PollInterval),
		firecrawl.WithLogger(logger),
	)
	deps.Keys = website

	fetcher := rdhttp.NewFetcher(
		rdhttp.WithRetries(cli.Retries),
		rdhttp.WithRetryDelay(cli.RetryDelay),
		rdhttp.WithRateLimit(cli.RateLimit),
	)
	repo, err := github.NewProvider(
		fetcher.Client(),
		rdslog.NewLoggingFetcher(fetcher, logger),
		github.WithAPIBaseURL(cli.GitHubAPIURL),
		github.WithRawBaseURL(cli.GitHubRawURL),
		github.WithToken(cli.GitHubToken),
		github.WithFilter(cli.Fetch.Include, cli.Fetch.Exclude),
		github.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}
	deps.Folders = repo

	deps.OutputDir = cli.Output
	deps.Registry = repodoc.NewRegistry(fs.NewDownloader(cli.Output))
	deps.Registry.Register(repodoc.SourceGitHub, rdslog.NewLoggingProvider(repo, repodoc.SourceGitHub, logger))
	deps.Registry.Register(repodoc.SourceWebsite, rdslog.NewLoggingProvider(website, repodoc.SourceWebsite, logger))

	if cmd == "fetch" && cli.Fetch.Tokens {
		tokenCounter, err := gemini.NewTokenCounter(gemini.DefaultModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		deps.Tokens = tokenCounter
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "repodoc.db"
	}
	dir := filepath.Join(home, ".repodoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "repodoc.db")
}
