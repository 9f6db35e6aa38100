// Package github implements repodoc.Provider for GitHub repositories.
// The repository tree and directory listings come from the GitHub REST API
// through go-github; file bodies are downloaded from the raw-content host.
package github

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/repodoc"
	gogithub "github.com/google/go-github/v60/github"
)

// Default endpoints.
const (
	DefaultAPIBaseURL = "https://api.github.com/"
	DefaultRawBaseURL = "https://raw.githubusercontent.com/"
)

// DocExtensions lists the file extensions treated as documentation.
var DocExtensions = []string{".md", ".txt", ".rst", ".mdx", ".adoc", ".markdown"}

var repoURLPattern = regexp.MustCompile(`github\.com/([^/?#]+)/([^/?#]+)`)

// Ensure Provider implements repodoc.Provider at compile time.
var _ repodoc.Provider = (*Provider)(nil)

// Provider retrieves documentation files from GitHub repositories.
// Files are fetched one at a time.
type Provider struct {
	client     *gogithub.Client
	fetcher    repodoc.Fetcher
	logger     *slog.Logger
	apiBaseURL string
	rawBaseURL string
	token      string
	include    []string
	exclude    []string
}

// Option configures a Provider.
type Option func(*Provider)

// WithAPIBaseURL points the provider at a different REST API root.
func WithAPIBaseURL(u string) Option {
	return func(p *Provider) {
		p.apiBaseURL = u
	}
}

// WithRawBaseURL points the provider at a different raw-content host.
func WithRawBaseURL(u string) Option {
	return func(p *Provider) {
		p.rawBaseURL = u
	}
}

// WithToken authenticates API requests with a bearer token.
func WithToken(token string) Option {
	return func(p *Provider) {
		p.token = token
	}
}

// WithFilter restricts documentation files to paths matching at least one
// include glob (when any are given) and none of the exclude globs.
// Globs use doublestar syntax, e.g. "docs/**" or "**/CHANGELOG.md".
func WithFilter(include, exclude []string) Option {
	return func(p *Provider) {
		p.include = include
		p.exclude = exclude
	}
}

// WithLogger sets the logger used to report skipped files.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// NewProvider creates a Provider. API calls go through httpClient, file
// bodies through fetcher; both are expected to carry the retry policy.
func NewProvider(httpClient *http.Client, fetcher repodoc.Fetcher, opts ...Option) (*Provider, error) {
	p := &Provider{
		fetcher:    fetcher,
		logger:     slog.New(slog.DiscardHandler),
		apiBaseURL: DefaultAPIBaseURL,
		rawBaseURL: DefaultRawBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, pattern := range append(slices.Clone(p.include), p.exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, repodoc.Errorf(repodoc.EINVALID, "invalid path pattern %q", pattern)
		}
	}

	client := gogithub.NewClient(httpClient)
	if p.token != "" {
		client = client.WithAuthToken(p.token)
	}
	if p.apiBaseURL != DefaultAPIBaseURL {
		u, err := url.Parse(withTrailingSlash(p.apiBaseURL))
		if err != nil {
			return nil, repodoc.Errorf(repodoc.EINVALID, "invalid API base URL %q", p.apiBaseURL)
		}
		client.BaseURL = u
	}
	p.client = client
	p.rawBaseURL = withTrailingSlash(p.rawBaseURL)

	return p, nil
}

// ParseRepoURL extracts the owner and repository name from a URL of the form
// github.com/<owner>/<repo>, dropping a trailing ".git".
func ParseRepoURL(repoURL string) (owner, repo string, err error) {
	m := repoURLPattern.FindStringSubmatch(repoURL)
	if m == nil {
		return "", "", repodoc.Errorf(repodoc.EINVALID, "invalid GitHub URL %q: use https://github.com/owner/repository", repoURL)
	}
	repo = strings.TrimSuffix(m[2], ".git")
	if repo == "" {
		return "", "", repodoc.Errorf(repodoc.EINVALID, "invalid GitHub URL %q: missing repository name", repoURL)
	}
	return m[1], repo, nil
}

// GetAllFiles retrieves every documentation file in the repository's
// default branch, sorted by path.
func (p *Provider) GetAllFiles(ctx context.Context, repoURL string, progress repodoc.ProgressFunc) ([]*repodoc.FileContent, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	tree, _, err := p.client.Git.GetTree(ctx, owner, repo, "HEAD", true)
	if err != nil {
		return nil, p.apiError(ctx, err, repodoc.ENOTREE, "could not read the tree of %s/%s", owner, repo)
	}
	if tree == nil || tree.Entries == nil {
		return nil, repodoc.Errorf(repodoc.ENOTREE, "could not read the tree of %s/%s", owner, repo)
	}

	var docs []remoteFile
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" || !p.match(entry.GetPath()) {
			continue
		}
		docs = append(docs, remoteFile{
			name: path.Base(entry.GetPath()),
			path: entry.GetPath(),
			url:  p.rawURL(owner, repo, entry.GetPath()),
			size: entry.GetSize(),
		})
	}
	if len(docs) == 0 {
		return nil, repodoc.Errorf(repodoc.ENODOCS, "no documentation files found in %s/%s", owner, repo)
	}

	files, err := p.fetchAll(ctx, docs, progress)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(files, func(a, b *repodoc.FileContent) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files, nil
}

// GetFiles retrieves the documentation files directly inside folderPath
// (not recursively), sorted by file name.
func (p *Provider) GetFiles(ctx context.Context, repoURL, folderPath string, progress repodoc.ProgressFunc) ([]*repodoc.FileContent, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}
	folderPath = strings.Trim(folderPath, "/")

	_, dir, _, err := p.client.Repositories.GetContents(ctx, owner, repo, folderPath, nil)
	if err != nil {
		return nil, p.apiError(ctx, err, repodoc.ENOTREE, "could not list %q in %s/%s", folderPath, owner, repo)
	}
	if dir == nil {
		return nil, repodoc.Errorf(repodoc.EINVALID, "%q in %s/%s is not a directory", folderPath, owner, repo)
	}

	var docs []remoteFile
	for _, entry := range dir {
		if entry.GetType() != "file" || !p.match(entry.GetPath()) {
			continue
		}
		u := entry.GetDownloadURL()
		if u == "" {
			u = p.rawURL(owner, repo, entry.GetPath())
		}
		docs = append(docs, remoteFile{
			name: entry.GetName(),
			path: entry.GetPath(),
			url:  u,
			size: entry.GetSize(),
		})
	}
	if len(docs) == 0 {
		return nil, repodoc.Errorf(repodoc.ENODOCS, "no documentation files found in %q of %s/%s", folderPath, owner, repo)
	}

	files, err := p.fetchAll(ctx, docs, progress)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(files, func(a, b *repodoc.FileContent) int {
		return strings.Compare(a.Name, b.Name)
	})
	return files, nil
}

// ConsolidateFiles merges repository files into one document.
func (p *Provider) ConsolidateFiles(files []*repodoc.FileContent) string {
	return repodoc.ConsolidateFiles(files, repodoc.ConsolidateOptions{
		Title:        "Documentação Consolidada",
		LocatorLabel: "Caminho",
		CountLabel:   "arquivos",
		GeneratedAt:  time.Now(),
	})
}

// FileName returns "<repo>-docs-<date>.md".
func (p *Provider) FileName(repoURL string, now time.Time) string {
	date := now.Format(repodoc.DateLayout)
	_, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return "documentacao-consolidada-" + date + ".md"
	}
	return repo + "-docs-" + date + ".md"
}

// remoteFile is a documentation file selected for download.
type remoteFile struct {
	name string
	path string
	url  string
	size int
}

// fetchAll downloads files sequentially. A file that cannot be fetched is
// logged, reported and skipped.
func (p *Provider) fetchAll(ctx context.Context, docs []remoteFile, progress repodoc.ProgressFunc) ([]*repodoc.FileContent, error) {
	files := make([]*repodoc.FileContent, 0, len(docs))
	for i, doc := range docs {
		progress.Percent(float64(i) / float64(len(docs)) * 100)
		progress.CurrentFile(doc.name, doc.path)

		content, err := p.fetcher.Fetch(ctx, doc.url)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			p.logger.Warn("skip file", "path", doc.path, "err", err)
			progress.FileError(doc.name, doc.path, err.Error())
			continue
		}

		files = append(files, repodoc.NewFileContent(doc.name, doc.path, content, doc.size))
		progress.FileComplete(doc.name, doc.path)
	}
	progress.Percent(100)
	return files, nil
}

// match reports whether a path is a documentation file that passes the
// configured globs.
func (p *Provider) match(filePath string) bool {
	if !IsDocFile(filePath) {
		return false
	}

	if len(p.include) > 0 {
		matched := false
		for _, pattern := range p.include {
			if ok, _ := doublestar.Match(pattern, filePath); ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, pattern := range p.exclude {
		if ok, _ := doublestar.Match(pattern, filePath); ok {
			return false
		}
	}

	return true
}

// IsDocFile reports whether filePath has a documentation extension.
// The comparison is case-insensitive.
func IsDocFile(filePath string) bool {
	return slices.Contains(DocExtensions, strings.ToLower(path.Ext(filePath)))
}

// rawURL builds the raw-content URL of a file on the default branch.
func (p *Provider) rawURL(owner, repo, filePath string) string {
	segments := strings.Split(filePath, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return p.rawBaseURL + owner + "/" + repo + "/HEAD/" + strings.Join(segments, "/")
}

// apiError keeps fetch-layer errors intact and reports anything else under
// code.
func (p *Provider) apiError(ctx context.Context, err error, code string, format string, args ...any) error {
	var appErr *repodoc.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	p.logger.Debug("github api error", "err", err)
	return repodoc.Errorf(code, format, args...)
}

func withTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
