package repodoc_test

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/fwojciec/repodoc"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := repodoc.Errorf(repodoc.ENOTREE, "no tree for %q", "owner/repo")

	assert.Equal(t, repodoc.ENOTREE, repodoc.ErrorCode(err))
	assert.Equal(t, "no tree for \"owner/repo\"", repodoc.ErrorMessage(err))
	assert.Equal(t, "repodoc error: code=no_tree message=no tree for \"owner/repo\"", err.Error())
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, repodoc.ErrorCode(nil))
	})

	t.Run("non-application error is internal", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, repodoc.EINTERNAL, repodoc.ErrorCode(errors.New("boom")))
	})

	t.Run("survives wrapping", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("fetch: %w", repodoc.Errorf(repodoc.ERATELIMITED, "slow down"))
		assert.Equal(t, repodoc.ERATELIMITED, repodoc.ErrorCode(err))
	})

	t.Run("survives url.Error", func(t *testing.T) {
		t.Parallel()
		err := &url.Error{Op: "Get", URL: "https://example.com", Err: repodoc.Errorf(repodoc.EEXHAUSTED, "gave up")}
		assert.Equal(t, repodoc.EEXHAUSTED, repodoc.ErrorCode(err))
		assert.Equal(t, "gave up", repodoc.ErrorMessage(err))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, repodoc.ErrorMessage(nil))
	})

	t.Run("hides non-application details", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", repodoc.ErrorMessage(errors.New("secret detail")))
	})
}
