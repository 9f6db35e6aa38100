package repodoc

import (
	"context"
	"time"
)

// Export records a consolidated document produced for a source.
type Export struct {
	ID          string    `json:"id"`
	Source      Source    `json:"source"`
	SourceURL   string    `json:"sourceUrl"`
	FileName    string    `json:"fileName"`
	ContentHash string    `json:"contentHash"`
	Files       int       `json:"files"`
	Bytes       int       `json:"bytes"`
	Tokens      int       `json:"tokens"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the export contains invalid fields.
func (e *Export) Validate() error {
	if e.Source == "" {
		return Errorf(EINVALID, "export source required")
	}
	if e.SourceURL == "" {
		return Errorf(EINVALID, "export source URL required")
	}
	if e.FileName == "" {
		return Errorf(EINVALID, "export file name required")
	}
	return nil
}

// ExportService records the history of produced documents.
type ExportService interface {
	// CreateExport records a new export. ID and CreatedAt are assigned.
	CreateExport(ctx context.Context, export *Export) error

	// FindExports returns exports matching the filter, newest first.
	FindExports(ctx context.Context, filter ExportFilter) ([]*Export, error)
}

// ExportFilter represents a filter for FindExports.
type ExportFilter struct {
	Source    *Source `json:"source"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
