package repodoc

import "context"

// APIKeyStorageKey is the key under which the crawling service's API key
// is persisted.
const APIKeyStorageKey = "firecrawl_api_key"

// KeyStore persists small string values such as API keys.
type KeyStore interface {
	// Get returns the value stored under key.
	// Returns ENOTFOUND if no value is stored.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
}
