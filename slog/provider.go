package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/repodoc"
)

// Ensure LoggingProvider implements repodoc.Provider.
var _ repodoc.Provider = (*LoggingProvider)(nil)

// LoggingProvider wraps a Provider and logs each retrieval with the number
// of files returned and skipped.
type LoggingProvider struct {
	next   repodoc.Provider
	source repodoc.Source
	logger *slog.Logger
}

// NewLoggingProvider creates a new LoggingProvider.
func NewLoggingProvider(next repodoc.Provider, source repodoc.Source, logger *slog.Logger) *LoggingProvider {
	return &LoggingProvider{next: next, source: source, logger: logger}
}

// GetAllFiles delegates to the wrapped provider and logs the operation.
func (p *LoggingProvider) GetAllFiles(ctx context.Context, sourceURL string, progress repodoc.ProgressFunc) (files []*repodoc.FileContent, err error) {
	var skipped int
	defer func(begin time.Time) {
		p.logger.Info("get all files",
			"source", string(p.source),
			"url", sourceURL,
			"count", len(files),
			"skipped", skipped,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	return p.next.GetAllFiles(ctx, sourceURL, func(e repodoc.ProgressEvent) {
		if e.Kind == repodoc.ProgressFileError {
			skipped++
			p.logger.Warn("file skipped", "name", e.Name, "path", e.Path, "reason", e.Reason)
		}
		if progress != nil {
			progress(e)
		}
	})
}

// ConsolidateFiles delegates to the wrapped provider.
func (p *LoggingProvider) ConsolidateFiles(files []*repodoc.FileContent) string {
	out := p.next.ConsolidateFiles(files)
	p.logger.Debug("consolidate",
		"source", string(p.source),
		"count", len(files),
		"bytes", len(out),
	)
	return out
}

// FileName delegates to the wrapped provider.
func (p *LoggingProvider) FileName(sourceURL string, now time.Time) string {
	return p.next.FileName(sourceURL, now)
}
