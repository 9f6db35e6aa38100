package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/repodoc"
	"golang.org/x/time/rate"
)

// DefaultRetries is the default total number of attempts per request.
const DefaultRetries = 3

// DefaultRetryDelay is the default base backoff delay.
const DefaultRetryDelay = time.Second

var _ http.RoundTripper = (*Transport)(nil)

// Transport is an http.RoundTripper that retries failed requests.
//
// Only 2xx responses are returned to the caller. A 403 is treated as rate
// limiting and fails at once with ERATELIMITED; other statuses and network
// errors are retried with a backoff of attempt × RetryDelay (1s, 2s, ...).
// When all attempts fail the error has code EEXHAUSTED and names the last
// status or network error.
type Transport struct {
	// Base performs the individual attempts. Defaults to http.DefaultTransport.
	Base http.RoundTripper

	// Retries is the total attempt budget. Defaults to DefaultRetries.
	Retries int

	// RetryDelay is the backoff unit. Defaults to DefaultRetryDelay.
	RetryDelay time.Duration

	// Limiter, if set, paces every attempt.
	Limiter *rate.Limiter
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	retries := t.Retries
	if retries <= 0 {
		retries = DefaultRetries
	}
	delay := t.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	// Requests whose body cannot be replayed get a single attempt.
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		retries = 1
	}

	url := req.URL.String()
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		if t.Limiter != nil {
			if err := t.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		attemptReq, err := cloneRequest(req)
		if err != nil {
			return nil, err
		}

		resp, err := base.RoundTrip(attemptReq)
		if err == nil {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp, nil
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if resp.StatusCode == http.StatusForbidden {
				return nil, repodoc.Errorf(repodoc.ERATELIMITED, "rate limit reached fetching %s (HTTP 403): try again in a few minutes", url)
			}
			lastErr = fmt.Errorf("HTTP %d", resp.StatusCode)
		} else {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = err
		}

		if attempt == retries {
			break
		}

		if err := sleep(ctx, time.Duration(attempt)*delay); err != nil {
			return nil, err
		}
	}

	return nil, repodoc.Errorf(repodoc.EEXHAUSTED, "fetching %s failed after %d attempts: %v", url, retries, lastErr)
}

// cloneRequest returns a copy of req with a fresh body for another attempt.
func cloneRequest(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}
	return clone, nil
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
