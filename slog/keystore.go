package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/repodoc"
)

// Ensure LoggingKeyStore implements repodoc.KeyStore.
var _ repodoc.KeyStore = (*LoggingKeyStore)(nil)

// LoggingKeyStore wraps a KeyStore with debug logging. Stored values are
// never logged.
type LoggingKeyStore struct {
	next   repodoc.KeyStore
	logger *slog.Logger
}

// NewLoggingKeyStore creates a new LoggingKeyStore.
func NewLoggingKeyStore(next repodoc.KeyStore, logger *slog.Logger) *LoggingKeyStore {
	return &LoggingKeyStore{next: next, logger: logger}
}

// Get delegates to the wrapped store and logs whether the key was found.
func (s *LoggingKeyStore) Get(ctx context.Context, key string) (value string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("key get",
			"key", key,
			"found", err == nil,
			"duration", time.Since(begin),
			"code", repodoc.ErrorCode(err),
		)
	}(time.Now())
	return s.next.Get(ctx, key)
}

// Set delegates to the wrapped store and logs the operation.
func (s *LoggingKeyStore) Set(ctx context.Context, key, value string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("key set",
			"key", key,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Set(ctx, key, value)
}
