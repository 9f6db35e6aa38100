package mock

import (
	"context"

	"github.com/fwojciec/repodoc"
)

var _ repodoc.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of repodoc.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, content, filename string) error
}

func (d *Downloader) Download(ctx context.Context, content, filename string) error {
	return d.DownloadFn(ctx, content, filename)
}
