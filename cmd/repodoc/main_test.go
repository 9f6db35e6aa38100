package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/repodoc"
	main "github.com/fwojciec/repodoc/cmd/repodoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMain() *main.Main {
	m := main.NewMain()
	m.Now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }
	return m
}

// fakeGitHub serves a two-file repository: /api/ mimics the REST API and
// /raw/ the raw-content host.
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/repos/acme/widgets/git/trees/HEAD", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sha": "abc", "tree": [
			{"path": "README.md", "type": "blob", "size": 9},
			{"path": "docs/guide.md", "type": "blob", "size": 7},
			{"path": "main.go", "type": "blob", "size": 5}
		]}`))
	})
	mux.HandleFunc("/raw/acme/widgets/HEAD/README.md", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# Widgets"))
	})
	mux.HandleFunc("/raw/acme/widgets/HEAD/docs/guide.md", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# Guide"))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// fakeFirecrawl completes every crawl on the first status check.
func fakeFirecrawl(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v0/crawl", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fc-0123456789abcdef" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"success": true, "jobId": "job-9"}`))
	})
	mux.HandleFunc("GET /v0/crawl/status/job-9", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "completed", "data": [
			{"markdown": "Start here.", "metadata": {"title": "Intro", "sourceURL": "https://docs.acme.dev/intro"}}
		]}`))
	})
	mux.HandleFunc("POST /v0/scrape", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fc-0123456789abcdef" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"success": true}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := newMain().Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, stdout.String(), "fetch")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := newMain().Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "history")
	})

	t.Run("fetches a repository end to end", func(t *testing.T) {
		t.Parallel()

		gh := fakeGitHub(t)
		dir := t.TempDir()
		out := filepath.Join(dir, "out")
		global := []string{
			"--db", filepath.Join(dir, "repodoc.db"),
			"--output", out,
			"--github-api-url", gh.URL + "/api/",
			"--github-raw-url", gh.URL + "/raw/",
			"--retry-delay", "1ms",
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := newMain().Run(context.Background(), append(global, "fetch", "https://github.com/acme/widgets"), stdout, stderr)
		require.NoError(t, err, stderr.String())

		data, err := os.ReadFile(filepath.Join(out, "widgets-docs-2026-10-16.md"))
		require.NoError(t, err)
		doc := string(data)
		assert.True(t, strings.HasPrefix(doc, "# Documentação Consolidada\n\n"))
		assert.Contains(t, doc, "Total de arquivos: 2\n")
		assert.Contains(t, doc, "## 1. README.md\n\n**Caminho:** README.md\n\n# Widgets\n\n---\n\n")
		assert.Contains(t, doc, "## 2. guide.md\n\n**Caminho:** docs/guide.md\n\n# Guide\n\n---\n\n")
		assert.NotContains(t, doc, "main.go")
		assert.Contains(t, stdout.String(), "2 files")

		stdout.Reset()
		err = newMain().Run(context.Background(), append(global, "history"), stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "widgets-docs-2026-10-16.md")
		assert.Contains(t, stdout.String(), "https://github.com/acme/widgets")
	})

	t.Run("rejects invalid glob before any request", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := newMain().Run(context.Background(), []string{
			"--db", filepath.Join(dir, "repodoc.db"),
			"fetch", "https://github.com/acme/widgets", "--include", "docs/[",
		}, stdout, stderr)

		assert.Equal(t, repodoc.EINVALID, repodoc.ErrorCode(err))
	})

	t.Run("manages key and crawls a website", func(t *testing.T) {
		t.Parallel()

		fc := fakeFirecrawl(t)
		dir := t.TempDir()
		out := filepath.Join(dir, "out")
		global := []string{
			"--db", filepath.Join(dir, "repodoc.db"),
			"--output", out,
			"--firecrawl-url", fc.URL + "/v0",
			"--poll-interval", "1ms",
		}
		run := func(args ...string) (string, error) {
			stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
			err := newMain().Run(context.Background(), append(append([]string{}, global...), args...), stdout, stderr)
			return stdout.String() + stderr.String(), err
		}

		_, err := run("fetch", "https://docs.acme.dev")
		assert.Equal(t, repodoc.ENOAPIKEY, repodoc.ErrorCode(err))

		_, err = run("key", "set", "fc-0123456789abcdef")
		require.NoError(t, err)

		output, err := run("key", "show")
		require.NoError(t, err)
		assert.Contains(t, output, "fc-...cdef")
		assert.NotContains(t, output, "fc-0123456789abcdef")

		output, err = run("key", "test")
		require.NoError(t, err)
		assert.Contains(t, output, "API key is valid.")

		_, err = run("key", "test", "fc-wrong-key-000")
		assert.Error(t, err)

		output, err = run("fetch", "https://docs.acme.dev")
		require.NoError(t, err, output)

		data, err := os.ReadFile(filepath.Join(out, "docs-docs-2026-10-16.md"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "# Documentação Consolidada do Website\n\n")
		assert.Contains(t, string(data), "## 1. intro.md\n\n**URL:** https://docs.acme.dev/intro\n\n# Intro\n\nStart here.\n\n---\n\n")
	})
}
