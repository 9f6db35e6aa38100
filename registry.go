package repodoc

import (
	"context"
	"sync"
	"time"
)

// Registry maps sources to their providers and is the single entry point
// used by callers to run the pipeline.
type Registry struct {
	mu         sync.RWMutex
	providers  map[Source]Provider
	downloader Downloader
}

// NewRegistry returns a Registry that hands consolidated documents to d.
func NewRegistry(d Downloader) *Registry {
	return &Registry{
		providers:  make(map[Source]Provider),
		downloader: d,
	}
}

// Register adds or replaces the provider for a source.
func (r *Registry) Register(source Source, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[source] = p
}

// Provider returns the provider registered for source.
// Returns EUNKNOWNSOURCE if none is registered.
func (r *Registry) Provider(source Source) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[source]
	if !ok {
		return nil, Errorf(EUNKNOWNSOURCE, "no provider registered for source %q", source)
	}
	return p, nil
}

// GetAllFiles retrieves all documentation files from url using the
// provider for source.
func (r *Registry) GetAllFiles(ctx context.Context, source Source, url string, progress ProgressFunc) ([]*FileContent, error) {
	p, err := r.Provider(source)
	if err != nil {
		return nil, err
	}
	return p.GetAllFiles(ctx, url, progress)
}

// ConsolidateFiles merges the files that carry content into one document.
// Returns EEMPTY if no file has content.
func (r *Registry) ConsolidateFiles(source Source, files []*FileContent) (string, error) {
	p, err := r.Provider(source)
	if err != nil {
		return "", err
	}

	valid := make([]*FileContent, 0, len(files))
	for _, f := range files {
		if f != nil && f.Content != "" {
			valid = append(valid, f)
		}
	}
	if len(valid) == 0 {
		return "", Errorf(EEMPTY, "no files with content to consolidate")
	}

	return p.ConsolidateFiles(valid), nil
}

// FileName derives the download file name for url using the provider
// for source.
func (r *Registry) FileName(source Source, url string, now time.Time) (string, error) {
	p, err := r.Provider(source)
	if err != nil {
		return "", err
	}
	return p.FileName(url, now), nil
}

// DownloadFile hands the consolidated content to the downloader.
func (r *Registry) DownloadFile(ctx context.Context, content, filename string) error {
	if r.downloader == nil {
		return Errorf(EINTERNAL, "no downloader configured")
	}
	return r.downloader.Download(ctx, content, filename)
}
