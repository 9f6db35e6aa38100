package mock

import (
	"context"

	"github.com/fwojciec/repodoc"
)

var _ repodoc.KeyStore = (*KeyStore)(nil)

// KeyStore is a mock implementation of repodoc.KeyStore.
type KeyStore struct {
	GetFn func(ctx context.Context, key string) (string, error)
	SetFn func(ctx context.Context, key, value string) error
}

func (s *KeyStore) Get(ctx context.Context, key string) (string, error) {
	return s.GetFn(ctx, key)
}

func (s *KeyStore) Set(ctx context.Context, key, value string) error {
	return s.SetFn(ctx, key, value)
}

// NewMemoryKeyStore returns a KeyStore backed by a map, preloaded with values.
// It is not safe for concurrent use.
func NewMemoryKeyStore(values map[string]string) *KeyStore {
	m := make(map[string]string, len(values))
	for k, v := range values {
		m[k] = v
	}
	return &KeyStore{
		GetFn: func(_ context.Context, key string) (string, error) {
			v, ok := m[key]
			if !ok {
				return "", repodoc.Errorf(repodoc.ENOTFOUND, "key %q not found", key)
			}
			return v, nil
		},
		SetFn: func(_ context.Context, key, value string) error {
			m[key] = value
			return nil
		},
	}
}
