package repodoc

import "context"

// Downloader delivers a generated document to the user under filename.
type Downloader interface {
	Download(ctx context.Context, content, filename string) error
}
