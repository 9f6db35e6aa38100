// Package http provides the retrying HTTP fetcher used by every provider.
// Transient failures are retried with a linearly increasing backoff while
// HTTP 403 responses fail immediately as rate limiting.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/repodoc"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout bounds how long a single attempt waits for response
// headers.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "repodoc"

// Ensure Fetcher implements repodoc.Fetcher at compile time.
var _ repodoc.Fetcher = (*Fetcher)(nil)

// Fetcher issues GET requests through a retrying Transport.
type Fetcher struct {
	client    *http.Client
	transport *Transport
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets how long each attempt waits for response headers.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRetries sets the total number of attempts per request.
// Defaults to DefaultRetries (3).
func WithRetries(n int) Option {
	return func(f *Fetcher) {
		f.transport.Retries = n
	}
}

// WithRetryDelay sets the base backoff delay. Attempt i waits i × d
// before the next attempt. Defaults to DefaultRetryDelay (1s).
func WithRetryDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.transport.RetryDelay = d
	}
}

// WithRateLimit paces attempts to at most rps requests per second.
// Requests are unpaced by default.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps > 0 {
			f.transport.Limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new retrying Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		transport: &Transport{},
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	base.ResponseHeaderTimeout = f.timeout
	f.transport.Base = base

	f.client = &http.Client{
		Transport: f.transport,
	}

	return f
}

// Client returns an http.Client that applies the fetcher's retry policy
// to every request. Used to hand the policy to API clients.
func (f *Fetcher) Client() *http.Client {
	return f.client
}

// FetchWithRetry issues a GET for url. A 2xx response is returned as is;
// the caller must close its body. A 403 fails at once with ERATELIMITED,
// any other failure is retried until the attempt budget is spent and then
// reported as EEXHAUSTED.
func (f *Fetcher) FetchWithRetry(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, repodoc.Errorf(repodoc.EINVALID, "invalid URL %q: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// Strip the *url.Error wrapper so callers see the application error.
		var appErr *repodoc.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return resp, nil
}

// Fetch retrieves the body of url as a string.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.FetchWithRetry(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}
