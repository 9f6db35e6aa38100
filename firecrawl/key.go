package firecrawl

import (
	"context"
	"strings"

	"github.com/fwojciec/repodoc"
)

// ProbeURL is scraped to check that an API key is accepted.
const ProbeURL = "https://example.com"

// APIKey returns the stored Firecrawl API key.
// Returns ENOAPIKEY if no key has been saved.
func (p *Provider) APIKey(ctx context.Context) (string, error) {
	key, err := p.keys.Get(ctx, repodoc.APIKeyStorageKey)
	if repodoc.ErrorCode(err) == repodoc.ENOTFOUND || (err == nil && strings.TrimSpace(key) == "") {
		return "", repodoc.Errorf(repodoc.ENOAPIKEY, "Firecrawl API key not configured: set one with 'repodoc key set'")
	} else if err != nil {
		return "", err
	}
	return key, nil
}

// SetAPIKey stores key, replacing any previous key.
func (p *Provider) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return repodoc.Errorf(repodoc.EINVALID, "API key required")
	}
	return p.keys.Set(ctx, repodoc.APIKeyStorageKey, key)
}

// TestAPIKey issues one scrape of ProbeURL with key and reports whether the
// service accepted it, judged only by the HTTP status. No retries are made.
func (p *Provider) TestAPIKey(ctx context.Context, key string) (bool, error) {
	status, err := p.client.Scrape(ctx, strings.TrimSpace(key), ProbeURL)
	if err != nil {
		return false, err
	}
	return status >= 200 && status < 300, nil
}
