package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/repodoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ repodoc.ExportService = (*ExportService)(nil)

// ExportService implements repodoc.ExportService using SQLite.
type ExportService struct {
	db *DB
}

// NewExportService creates a new ExportService.
func NewExportService(db *DB) *ExportService {
	return &ExportService{db: db}
}

// CreateExport records a new export.
func (s *ExportService) CreateExport(ctx context.Context, export *repodoc.Export) error {
	if err := export.Validate(); err != nil {
		return err
	}

	export.ID = uuid.New().String()
	export.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exports (id, source, source_url, file_name, content_hash, files, bytes, tokens, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, export.ID, string(export.Source), export.SourceURL, export.FileName, export.ContentHash,
		export.Files, export.Bytes, export.Tokens, formatTime(export.CreatedAt))

	return err
}

// FindExports retrieves exports matching the filter, newest first.
func (s *ExportService) FindExports(ctx context.Context, filter repodoc.ExportFilter) ([]*repodoc.Export, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, source, source_url, file_name, content_hash, files, bytes, tokens, created_at FROM exports WHERE 1=1`)

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, string(*filter.Source))
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []*repodoc.Export
	for rows.Next() {
		var export repodoc.Export
		var source, createdAt string

		if err := rows.Scan(&export.ID, &source, &export.SourceURL, &export.FileName, &export.ContentHash,
			&export.Files, &export.Bytes, &export.Tokens, &createdAt); err != nil {
			return nil, err
		}
		export.Source = repodoc.Source(source)

		export.CreatedAt, err = parseTime(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		exports = append(exports, &export)
	}

	return exports, rows.Err()
}
