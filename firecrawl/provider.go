package firecrawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/repodoc"
)

// Crawl defaults.
const (
	DefaultPageLimit       = 50
	DefaultPollInterval    = 10 * time.Second
	DefaultMaxPollAttempts = 60
)

// Progress milestones reported while a crawl runs.
const (
	percentStarted   = 10
	percentSubmitted = 30
	percentPollCap   = 70
	percentCrawled   = 80
)

// DefaultExcludes keeps binary assets out of crawls.
var DefaultExcludes = []string{"*.jpg", "*.jpeg", "*.png", "*.gif", "*.pdf"}

// EmptyContentReason is reported for pages without Markdown content.
const EmptyContentReason = "empty content"

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9-_]`)

// Ensure Provider implements repodoc.Provider at compile time.
var _ repodoc.Provider = (*Provider)(nil)

// Provider retrieves documentation pages from a website through Firecrawl.
type Provider struct {
	client       *Client
	keys         repodoc.KeyStore
	logger       *slog.Logger
	pageLimit    int
	pollInterval time.Duration
	maxAttempts  int
}

// Option configures a Provider.
type Option func(*Provider)

// WithPageLimit bounds the number of pages crawled.
// Defaults to DefaultPageLimit (50).
func WithPageLimit(n int) Option {
	return func(p *Provider) {
		p.pageLimit = n
	}
}

// WithPollInterval sets the wait before each status check.
// Defaults to DefaultPollInterval (10s).
func WithPollInterval(d time.Duration) Option {
	return func(p *Provider) {
		p.pollInterval = d
	}
}

// WithMaxPollAttempts sets how many status checks are made before giving up.
// Defaults to DefaultMaxPollAttempts (60), ten minutes at the default interval.
func WithMaxPollAttempts(n int) Option {
	return func(p *Provider) {
		p.maxAttempts = n
	}
}

// WithLogger sets the logger used for failed status checks.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// NewProvider creates a Provider that reads its API key from keys.
func NewProvider(client *Client, keys repodoc.KeyStore, opts ...Option) *Provider {
	p := &Provider{
		client:       client,
		keys:         keys,
		logger:       slog.New(slog.DiscardHandler),
		pageLimit:    DefaultPageLimit,
		pollInterval: DefaultPollInterval,
		maxAttempts:  DefaultMaxPollAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetAllFiles crawls websiteURL and returns one file per page with content,
// sorted by file name.
func (p *Provider) GetAllFiles(ctx context.Context, websiteURL string, progress repodoc.ProgressFunc) ([]*repodoc.FileContent, error) {
	apiKey, err := p.APIKey(ctx)
	if err != nil {
		return nil, err
	}

	progress.Percent(percentStarted)
	progress.CurrentFile("starting crawl", websiteURL)

	jobID, err := p.client.StartCrawl(ctx, apiKey, CrawlRequest{
		URL: websiteURL,
		CrawlerOptions: CrawlerOptions{
			Limit:    p.pageLimit,
			Excludes: DefaultExcludes,
		},
		PageOptions: PageOptions{
			OnlyMainContent: true,
			IncludeHTML:     false,
			Screenshot:      false,
		},
	})
	if err != nil {
		return nil, err
	}
	job := &CrawlJob{ID: jobID, Status: StatusPending}
	progress.Percent(percentSubmitted)

	pages, err := p.wait(ctx, apiKey, job, websiteURL, progress)
	if err != nil {
		return nil, err
	}
	progress.Percent(percentCrawled)

	files := make([]*repodoc.FileContent, 0, len(pages))
	for i, page := range pages {
		progress.Percent(percentCrawled + float64(i)/float64(len(pages))*(100-percentCrawled))

		sourceURL := page.Metadata.SourceURL
		if sourceURL == "" {
			sourceURL = websiteURL
		}
		segment := lastPathSegment(sourceURL)
		name := sanitizeName(segment)

		progress.CurrentFile(name, sourceURL)

		if strings.TrimSpace(page.Markdown) == "" {
			progress.FileError(name, sourceURL, EmptyContentReason)
			continue
		}

		title := page.Metadata.Title
		if title == "" {
			title = segment
		}
		files = append(files, &repodoc.FileContent{
			Name:    name,
			Path:    sourceURL,
			Content: "# " + title + "\n\n" + page.Markdown,
			Size:    len(page.Markdown),
		})
		progress.FileComplete(name, sourceURL)
	}
	progress.Percent(100)

	if len(files) == 0 {
		return nil, repodoc.Errorf(repodoc.ENOCONTENT, "no usable content found on %s", websiteURL)
	}

	slices.SortStableFunc(files, func(a, b *repodoc.FileContent) int {
		return strings.Compare(a.Name, b.Name)
	})
	return files, nil
}

// wait polls job until it completes, fails, or the attempt ceiling is hit.
func (p *Provider) wait(ctx context.Context, apiKey string, job *CrawlJob, websiteURL string, progress repodoc.ProgressFunc) ([]Page, error) {
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := sleep(ctx, p.pollInterval); err != nil {
			return nil, err
		}

		status, err := p.client.CrawlStatus(ctx, apiKey, job.ID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			p.logger.Warn("crawl status check failed", "job", job.ID, "attempt", attempt, "err", err)
		} else {
			job.Status = ParseCrawlStatus(status.Status)
			switch job.Status {
			case StatusCompleted:
				if len(status.Data) == 0 {
					return nil, repodoc.Errorf(repodoc.ENOCONTENT, "crawl of %s completed without pages", websiteURL)
				}
				return status.Data, nil
			case StatusFailed:
				detail := status.Error
				if detail == "" {
					detail = "no details provided"
				}
				return nil, repodoc.Errorf(repodoc.ECRAWLFAILED, "crawl of %s failed: %s", websiteURL, detail)
			}
		}

		pct := percentSubmitted + float64(attempt)/float64(p.maxAttempts)*(percentPollCap-percentSubmitted)
		progress.Percent(min(pct, percentPollCap))
		progress.CurrentFile(fmt.Sprintf("crawling (check %d/%d)", attempt, p.maxAttempts), websiteURL)
	}

	return nil, repodoc.Errorf(repodoc.ETIMEOUT, "crawl of %s did not finish after %d status checks", websiteURL, p.maxAttempts)
}

// ConsolidateFiles merges crawled pages into one document.
func (p *Provider) ConsolidateFiles(files []*repodoc.FileContent) string {
	return repodoc.ConsolidateFiles(files, repodoc.ConsolidateOptions{
		Title:        "Documentação Consolidada do Website",
		LocatorLabel: "URL",
		CountLabel:   "páginas",
		GeneratedAt:  time.Now(),
	})
}

// FileName derives the download name from the site's hostname.
func (p *Provider) FileName(websiteURL string, now time.Time) string {
	return repodoc.GenerateFileName(websiteURL, now)
}

// PageFileName derives a filesystem-safe Markdown file name from a page URL:
// the last non-empty path segment (or "index") with every character outside
// [A-Za-z0-9-_] replaced by "-".
func PageFileName(pageURL string) string {
	return sanitizeName(lastPathSegment(pageURL))
}

func lastPathSegment(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "index"
	}
	segments := strings.FieldsFunc(u.EscapedPath(), func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return "index"
	}
	return segments[len(segments)-1]
}

func sanitizeName(segment string) string {
	return unsafeNameChars.ReplaceAllString(segment, "-") + ".md"
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
