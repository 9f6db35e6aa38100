package mock

import (
	"context"
	"time"

	"github.com/fwojciec/repodoc"
)

var _ repodoc.Provider = (*Provider)(nil)

// Provider is a mock implementation of repodoc.Provider.
type Provider struct {
	GetAllFilesFn      func(ctx context.Context, sourceURL string, progress repodoc.ProgressFunc) ([]*repodoc.FileContent, error)
	ConsolidateFilesFn func(files []*repodoc.FileContent) string
	FileNameFn         func(sourceURL string, now time.Time) string
}

func (p *Provider) GetAllFiles(ctx context.Context, sourceURL string, progress repodoc.ProgressFunc) ([]*repodoc.FileContent, error) {
	return p.GetAllFilesFn(ctx, sourceURL, progress)
}

func (p *Provider) ConsolidateFiles(files []*repodoc.FileContent) string {
	return p.ConsolidateFilesFn(files)
}

func (p *Provider) FileName(sourceURL string, now time.Time) string {
	return p.FileNameFn(sourceURL, now)
}
