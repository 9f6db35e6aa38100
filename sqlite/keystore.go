package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/repodoc"
)

// Compile-time interface verification.
var _ repodoc.KeyStore = (*KeyStore)(nil)

// KeyStore implements repodoc.KeyStore on the settings table.
type KeyStore struct {
	db *DB
}

// NewKeyStore creates a new KeyStore.
func NewKeyStore(db *DB) *KeyStore {
	return &KeyStore{db: db}
}

// Get returns the value stored under key.
func (s *KeyStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repodoc.Errorf(repodoc.ENOTFOUND, "setting %q not found", key)
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *KeyStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return repodoc.Errorf(repodoc.EINVALID, "setting key required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, formatTime(time.Now()))
	return err
}
