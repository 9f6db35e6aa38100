package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/repodoc"
	main "github.com/fwojciec/repodoc/cmd/repodoc"
	"github.com/fwojciec/repodoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchFixture struct {
	deps       *main.Dependencies
	stdout     *bytes.Buffer
	stderr     *bytes.Buffer
	downloaded map[string]string
	exports    []*repodoc.Export
}

func newFetchFixture(t *testing.T, provider *mock.Provider) *fetchFixture {
	t.Helper()

	f := &fetchFixture{
		stdout:     &bytes.Buffer{},
		stderr:     &bytes.Buffer{},
		downloaded: map[string]string{},
	}

	registry := repodoc.NewRegistry(&mock.Downloader{
		DownloadFn: func(_ context.Context, content, filename string) error {
			f.downloaded[filename] = content
			return nil
		},
	})
	registry.Register(repodoc.SourceGitHub, provider)
	registry.Register(repodoc.SourceWebsite, provider)

	f.deps = &main.Dependencies{
		Ctx:      context.Background(),
		Stdout:   f.stdout,
		Stderr:   f.stderr,
		Registry: registry,
		Exports: &mock.ExportService{
			CreateExportFn: func(_ context.Context, e *repodoc.Export) error {
				f.exports = append(f.exports, e)
				return nil
			},
		},
		OutputDir: "out",
		Now:       func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) },
	}
	return f
}

func docsProvider() *mock.Provider {
	return &mock.Provider{
		GetAllFilesFn: func(_ context.Context, _ string, progress repodoc.ProgressFunc) ([]*repodoc.FileContent, error) {
			progress.Percent(0)
			progress.CurrentFile("README.md", "README.md")
			progress.FileComplete("README.md", "README.md")
			progress.CurrentFile("guide.md", "docs/guide.md")
			progress.FileError("guide.md", "docs/guide.md", "HTTP 500")
			progress.Percent(100)
			return []*repodoc.FileContent{
				{Name: "README.md", Path: "README.md", Content: "# Widgets"},
				{Name: "empty.md", Path: "docs/empty.md", Content: ""},
			}, nil
		},
		ConsolidateFilesFn: func(files []*repodoc.FileContent) string {
			return "consolidated:" + files[0].Content
		},
		FileNameFn: func(sourceURL string, now time.Time) string {
			return "widgets-docs-" + now.Format(repodoc.DateLayout) + ".md"
		},
	}
}

func TestFetchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes document and records export", func(t *testing.T) {
		t.Parallel()

		f := newFetchFixture(t, docsProvider())
		cmd := &main.FetchCmd{URL: "https://github.com/acme/widgets", Source: "auto"}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"widgets-docs-2026-10-16.md": "consolidated:# Widgets"}, f.downloaded)

		require.Len(t, f.exports, 1)
		e := f.exports[0]
		assert.Equal(t, repodoc.SourceGitHub, e.Source)
		assert.Equal(t, "https://github.com/acme/widgets", e.SourceURL)
		assert.Equal(t, "widgets-docs-2026-10-16.md", e.FileName)
		assert.Equal(t, 1, e.Files)
		assert.Equal(t, len("consolidated:# Widgets"), e.Bytes)
		assert.Equal(t, main.ComputeHash("consolidated:# Widgets"), e.ContentHash)

		assert.Contains(t, f.stdout.String(), "Saved out/widgets-docs-2026-10-16.md")
		assert.Contains(t, f.stderr.String(), "✓ README.md")
		assert.Contains(t, f.stderr.String(), "✗ docs/guide.md: HTTP 500")
	})

	t.Run("uses explicit name and source", func(t *testing.T) {
		t.Parallel()

		var gotSource string
		f := newFetchFixture(t, docsProvider())
		f.deps.Registry = repodoc.NewRegistry(&mock.Downloader{
			DownloadFn: func(_ context.Context, content, filename string) error {
				f.downloaded[filename] = content
				return nil
			},
		})
		f.deps.Registry.Register(repodoc.SourceWebsite, &mock.Provider{
			GetAllFilesFn: func(_ context.Context, sourceURL string, _ repodoc.ProgressFunc) ([]*repodoc.FileContent, error) {
				gotSource = "website"
				return []*repodoc.FileContent{{Name: "index.md", Path: sourceURL, Content: "hi"}}, nil
			},
			ConsolidateFilesFn: func([]*repodoc.FileContent) string { return "doc" },
		})

		cmd := &main.FetchCmd{URL: "https://github.com/acme/widgets", Source: "website", Name: "custom.md"}

		require.NoError(t, cmd.Run(f.deps))
		assert.Equal(t, "website", gotSource)
		assert.Equal(t, "doc", f.downloaded["custom.md"])
	})

	t.Run("counts tokens when configured", func(t *testing.T) {
		t.Parallel()

		f := newFetchFixture(t, docsProvider())
		f.deps.Tokens = &mock.TokenCounter{
			CountTokensFn: func(_ context.Context, text string) (int, error) { return 4200, nil },
		}
		cmd := &main.FetchCmd{URL: "https://github.com/acme/widgets", Source: "auto"}

		require.NoError(t, cmd.Run(f.deps))
		require.Len(t, f.exports, 1)
		assert.Equal(t, 4200, f.exports[0].Tokens)
		assert.Contains(t, f.stdout.String(), "~4k tokens")
	})

	t.Run("reports provider error without writing", func(t *testing.T) {
		t.Parallel()

		f := newFetchFixture(t, &mock.Provider{
			GetAllFilesFn: func(context.Context, string, repodoc.ProgressFunc) ([]*repodoc.FileContent, error) {
				return nil, repodoc.Errorf(repodoc.ENODOCS, "no documentation files in acme/widgets")
			},
		})
		cmd := &main.FetchCmd{URL: "https://github.com/acme/widgets", Source: "auto"}

		err := cmd.Run(f.deps)

		require.Error(t, err)
		assert.Equal(t, repodoc.ENODOCS, repodoc.ErrorCode(err))
		assert.Contains(t, f.stderr.String(), "error: no documentation files in acme/widgets")
		assert.Empty(t, f.downloaded)
		assert.Empty(t, f.exports)
	})

	t.Run("returns EEMPTY when no file has content", func(t *testing.T) {
		t.Parallel()

		f := newFetchFixture(t, &mock.Provider{
			GetAllFilesFn: func(context.Context, string, repodoc.ProgressFunc) ([]*repodoc.FileContent, error) {
				return []*repodoc.FileContent{{Name: "a.md", Path: "a.md"}}, nil
			},
		})
		cmd := &main.FetchCmd{URL: "https://docs.example.com", Source: "auto"}

		err := cmd.Run(f.deps)

		assert.Equal(t, repodoc.EEMPTY, repodoc.ErrorCode(err))
		assert.Empty(t, f.downloaded)
	})

	t.Run("fetches a single folder", func(t *testing.T) {
		t.Parallel()

		var gotFolder string
		f := newFetchFixture(t, docsProvider())
		f.deps.Folders = folderListerFunc(func(_ context.Context, repoURL, folder string, _ repodoc.ProgressFunc) ([]*repodoc.FileContent, error) {
			gotFolder = folder
			return []*repodoc.FileContent{{Name: "guide.md", Path: "docs/guide.md", Content: "Guide"}}, nil
		})
		cmd := &main.FetchCmd{URL: "https://github.com/acme/widgets", Source: "auto", Folder: "docs"}

		require.NoError(t, cmd.Run(f.deps))
		assert.Equal(t, "docs", gotFolder)
		assert.Equal(t, "consolidated:Guide", f.downloaded["widgets-docs-2026-10-16.md"])
	})

	t.Run("rejects folder for websites", func(t *testing.T) {
		t.Parallel()

		f := newFetchFixture(t, docsProvider())
		cmd := &main.FetchCmd{URL: "https://docs.example.com", Source: "auto", Folder: "docs"}

		err := cmd.Run(f.deps)

		assert.Equal(t, repodoc.EINVALID, repodoc.ErrorCode(err))
	})

	t.Run("keeps document when history cannot be recorded", func(t *testing.T) {
		t.Parallel()

		f := newFetchFixture(t, docsProvider())
		f.deps.Exports = &mock.ExportService{
			CreateExportFn: func(context.Context, *repodoc.Export) error { return errors.New("disk full") },
		}
		cmd := &main.FetchCmd{URL: "https://github.com/acme/widgets", Source: "auto"}

		require.NoError(t, cmd.Run(f.deps))
		assert.Len(t, f.downloaded, 1)
		assert.Contains(t, f.stderr.String(), "warning: could not record export")
	})
}

type folderListerFunc func(ctx context.Context, repoURL, folderPath string, progress repodoc.ProgressFunc) ([]*repodoc.FileContent, error)

func (fn folderListerFunc) GetFiles(ctx context.Context, repoURL, folderPath string, progress repodoc.ProgressFunc) ([]*repodoc.FileContent, error) {
	return fn(ctx, repoURL, folderPath, progress)
}
