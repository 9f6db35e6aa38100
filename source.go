package repodoc

import (
	"context"
	"strings"
	"time"
)

// Source identifies the kind of documentation source.
type Source string

// Supported documentation sources.
const (
	SourceGitHub  Source = "github"
	SourceWebsite Source = "website"
)

// ParseSource converts user input into a Source.
func ParseSource(s string) (Source, error) {
	switch src := Source(strings.ToLower(strings.TrimSpace(s))); src {
	case SourceGitHub, SourceWebsite:
		return src, nil
	default:
		return "", Errorf(EINVALID, "unknown source %q: use github or website", s)
	}
}

// DetectSource guesses the source kind from a URL. Any URL mentioning
// github.com is treated as a repository; everything else as a website.
// It does not validate the URL.
func DetectSource(url string) Source {
	if strings.Contains(url, "github.com") {
		return SourceGitHub
	}
	return SourceWebsite
}

// Provider enumerates and fetches documentation files from one kind of source.
type Provider interface {
	// GetAllFiles retrieves every documentation file reachable from sourceURL.
	// Files that fail individually are reported through progress and skipped;
	// the call fails only when nothing usable could be retrieved.
	// The returned files are sorted in the provider's canonical order.
	GetAllFiles(ctx context.Context, sourceURL string, progress ProgressFunc) ([]*FileContent, error)

	// ConsolidateFiles merges files into a single Markdown document
	// using the provider's header and locator labels.
	ConsolidateFiles(files []*FileContent) string

	// FileName derives a download file name for sourceURL on the given day.
	FileName(sourceURL string, now time.Time) string
}
