// Package firecrawl implements repodoc.Provider for websites using the
// Firecrawl crawling API. Crawling itself happens on Firecrawl's side; this
// package starts a crawl job, polls it to completion, and turns the returned
// pages into documentation files.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/repodoc"
)

// DefaultBaseURL is the root of the Firecrawl v0 API.
const DefaultBaseURL = "https://api.firecrawl.dev/v0"

// CrawlRequest is the body of POST /crawl.
type CrawlRequest struct {
	URL            string         `json:"url"`
	CrawlerOptions CrawlerOptions `json:"crawlerOptions"`
	PageOptions    PageOptions    `json:"pageOptions"`
}

// CrawlerOptions bounds a crawl.
type CrawlerOptions struct {
	Limit    int      `json:"limit"`
	Excludes []string `json:"excludes,omitempty"`
}

// PageOptions controls content extraction for each crawled page.
type PageOptions struct {
	OnlyMainContent bool `json:"onlyMainContent"`
	IncludeHTML     bool `json:"includeHtml"`
	Screenshot      bool `json:"screenshot"`
}

// CrawlResponse is the reply to POST /crawl.
type CrawlResponse struct {
	Success bool   `json:"success"`
	JobID   string `json:"jobId"`
	Error   string `json:"error"`
}

// StatusResponse is the reply to GET /crawl/status/{jobId}.
type StatusResponse struct {
	Status  string `json:"status"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Data    []Page `json:"data"`
	Error   string `json:"error"`
}

// Page is one crawled page.
type Page struct {
	Markdown string       `json:"markdown"`
	Content  string       `json:"content"`
	Metadata PageMetadata `json:"metadata"`
}

// PageMetadata describes the origin of a crawled page.
type PageMetadata struct {
	Title     string `json:"title"`
	SourceURL string `json:"sourceURL"`
}

// CrawlStatus is the normalized state of a crawl job.
type CrawlStatus string

// Crawl job states. Firecrawl reports intermediate states such as "active"
// or "scraping"; all of them are StatusPending.
const (
	StatusPending   CrawlStatus = "pending"
	StatusCompleted CrawlStatus = "completed"
	StatusFailed    CrawlStatus = "failed"
)

// ParseCrawlStatus normalizes a status reported by Firecrawl.
func ParseCrawlStatus(s string) CrawlStatus {
	switch strings.ToLower(s) {
	case "completed":
		return StatusCompleted
	case "failed":
		return StatusFailed
	default:
		return StatusPending
	}
}

// CrawlJob tracks one crawl for the duration of a GetAllFiles call.
type CrawlJob struct {
	ID     string
	Status CrawlStatus
}

// Client calls the Firecrawl API. Requests are not retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// NewClient creates a new Client. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, opts ...ClientOption) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartCrawl submits a crawl job and returns its identifier.
// Returns ECRAWLSTART if the service rejects the job or returns no identifier.
func (c *Client) StartCrawl(ctx context.Context, apiKey string, req CrawlRequest) (string, error) {
	resp, err := c.do(ctx, apiKey, http.MethodPost, "/crawl", req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", repodoc.Errorf(repodoc.ECRAWLSTART, "could not start crawl of %s: %v", req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", repodoc.Errorf(repodoc.ECRAWLSTART, "could not start crawl of %s: HTTP %d", req.URL, resp.StatusCode)
	}

	var data CrawlResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", repodoc.Errorf(repodoc.ECRAWLSTART, "could not start crawl of %s: invalid response: %v", req.URL, err)
	}
	if !data.Success {
		detail := data.Error
		if detail == "" {
			detail = "service reported failure"
		}
		return "", repodoc.Errorf(repodoc.ECRAWLSTART, "could not start crawl of %s: %s", req.URL, detail)
	}
	if data.JobID == "" {
		return "", repodoc.Errorf(repodoc.ECRAWLSTART, "could not start crawl of %s: no job id returned", req.URL)
	}

	return data.JobID, nil
}

// CrawlStatus fetches the current state of a crawl job.
func (c *Client) CrawlStatus(ctx context.Context, apiKey, jobID string) (*StatusResponse, error) {
	resp, err := c.do(ctx, apiKey, http.MethodGet, "/crawl/status/"+jobID, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("crawl status: HTTP %d", resp.StatusCode)
	}

	var data StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("crawl status: %w", err)
	}
	return &data, nil
}

// Scrape issues a single-page scrape and returns the HTTP status code.
// The response body is discarded.
func (c *Client) Scrape(ctx context.Context, apiKey, pageURL string) (int, error) {
	resp, err := c.do(ctx, apiKey, http.MethodPost, "/scrape", map[string]string{"url": pageURL})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func (c *Client) do(ctx context.Context, apiKey, method, path string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}
