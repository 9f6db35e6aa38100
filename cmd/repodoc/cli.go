package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/repodoc"
)

// KeyManager manages the Firecrawl API key.
type KeyManager interface {
	APIKey(ctx context.Context) (string, error)
	SetAPIKey(ctx context.Context, key string) error
	TestAPIKey(ctx context.Context, key string) (bool, error)
}

// FolderLister retrieves the documentation files of a single repository folder.
type FolderLister interface {
	GetFiles(ctx context.Context, repoURL, folderPath string, progress repodoc.ProgressFunc) ([]*repodoc.FileContent, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Registry  *repodoc.Registry
	Folders   FolderLister
	Keys      KeyManager
	Exports   repodoc.ExportService
	Tokens    repodoc.TokenCounter
	OutputDir string
	Now       func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `env:"REPODOC_DB" help:"SQLite database path (default ~/.repodoc/repodoc.db)"`
	Output  string `short:"o" env:"REPODOC_OUTPUT" default:"." help:"Directory the consolidated document is written to"`
	Verbose int    `short:"v" type:"counter" help:"Log more detail (repeatable)"`

	GitHubToken  string        `name:"github-token" env:"GITHUB_TOKEN" help:"GitHub token for higher rate limits"`
	GitHubAPIURL string        `name:"github-api-url" env:"GITHUB_API_URL" default:"https://api.github.com/" hidden:""`
	GitHubRawURL string        `name:"github-raw-url" env:"GITHUB_RAW_URL" default:"https://raw.githubusercontent.com/" hidden:""`
	FirecrawlURL string        `name:"firecrawl-url" env:"FIRECRAWL_BASE_URL" default:"https://api.firecrawl.dev/v0" help:"Firecrawl API base URL"`
	PollInterval time.Duration `default:"10s" help:"Wait between Firecrawl crawl status checks"`
	Retries      int           `default:"3" help:"Attempts per GitHub request"`
	RetryDelay   time.Duration `default:"1s" help:"Base delay between attempts, multiplied by the attempt number"`
	RateLimit    float64       `default:"0" help:"Maximum GitHub requests per second (0 for unlimited)"`

	Fetch   FetchCmd   `cmd:"" help:"Fetch documentation and write one consolidated Markdown file"`
	Key     KeyCmd     `cmd:"" help:"Manage the Firecrawl API key"`
	History HistoryCmd `cmd:"" help:"List previously generated documents"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL     string   `arg:"" help:"GitHub repository or website URL"`
	Source  string   `short:"s" enum:"auto,github,website" default:"auto" help:"Source type (auto detects from URL)"`
	Folder  string   `help:"Only fetch one repository folder (GitHub only)"`
	Name    string   `short:"n" help:"Output file name (default derived from URL and date)"`
	Include []string `short:"i" help:"Only keep repository paths matching glob (repeatable)"`
	Exclude []string `short:"x" help:"Skip repository paths matching glob (repeatable)"`
	Tokens  bool     `help:"Count Gemini tokens of the consolidated document"`
}

// KeyCmd groups the "key" subcommands.
type KeyCmd struct {
	Set  KeySetCmd  `cmd:"" help:"Store the Firecrawl API key"`
	Show KeyShowCmd `cmd:"" help:"Show the stored key, masked"`
	Test KeyTestCmd `cmd:"" help:"Check a key against the Firecrawl API"`
}

// KeySetCmd is the "key set" subcommand.
type KeySetCmd struct {
	Key string `arg:"" help:"Firecrawl API key"`
}

// KeyShowCmd is the "key show" subcommand.
type KeyShowCmd struct{}

// KeyTestCmd is the "key test" subcommand.
type KeyTestCmd struct {
	Key string `arg:"" optional:"" help:"Key to test (default: stored key)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit  int    `short:"l" default:"20" help:"Maximum number of entries"`
	Source string `help:"Only show one source type (github or website)"`
}
