package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/mock"
	rdslog "github.com/fwojciec/repodoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingKeyStore(t *testing.T) {
	t.Parallel()

	t.Run("never logs the stored value", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		store := rdslog.NewLoggingKeyStore(mock.NewMemoryKeyStore(nil), logger)
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, repodoc.APIKeyStorageKey, "fc-very-secret"))
		v, err := store.Get(ctx, repodoc.APIKeyStorageKey)
		require.NoError(t, err)
		assert.Equal(t, "fc-very-secret", v)

		output := buf.String()
		assert.Contains(t, output, "key set")
		assert.Contains(t, output, "key get")
		assert.Contains(t, output, "found=true")
		assert.NotContains(t, output, "fc-very-secret")
	})

	t.Run("logs missing key", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		store := rdslog.NewLoggingKeyStore(mock.NewMemoryKeyStore(nil), logger)

		_, err := store.Get(context.Background(), repodoc.APIKeyStorageKey)

		assert.Equal(t, repodoc.ENOTFOUND, repodoc.ErrorCode(err))
		assert.Contains(t, buf.String(), "found=false")
		assert.Contains(t, buf.String(), "code=not_found")
	})
}
