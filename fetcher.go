package repodoc

import "context"

// Fetcher retrieves the body of a URL.
// Implementations hide retry and backoff policy: a returned error means the
// fetch failed permanently (ERATELIMITED) or ran out of attempts (EEXHAUSTED).
type Fetcher interface {
	// Fetch issues a GET and returns the response body.
	// The context controls timeout and cancellation, including backoff waits.
	Fetch(ctx context.Context, url string) (string, error)
}
