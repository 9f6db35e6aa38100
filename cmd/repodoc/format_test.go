package main_test

import (
	"testing"

	main "github.com/fwojciec/repodoc/cmd/repodoc"
	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", main.FormatBytes(512))
	assert.Equal(t, "1.5 KB", main.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", main.FormatBytes(2*1024*1024))
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~999 tokens", main.FormatTokens(999))
	assert.Equal(t, "~2k tokens", main.FormatTokens(1500))
	assert.Equal(t, "~12k tokens", main.FormatTokens(12345))
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	h := main.ComputeHash("# Documentação Consolidada")

	assert.Len(t, h, 16)
	assert.Equal(t, h, main.ComputeHash("# Documentação Consolidada"))
	assert.NotEqual(t, h, main.ComputeHash("# Documentação Consolidada do Website"))
}

func TestMaskKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fc-...cdef", main.MaskKey("fc-0123456789abcdef"))
	assert.Equal(t, "********", main.MaskKey("short"))
}
