package mock

import (
	"context"

	"github.com/fwojciec/repodoc"
)

var _ repodoc.ExportService = (*ExportService)(nil)

// ExportService is a mock implementation of repodoc.ExportService.
type ExportService struct {
	CreateExportFn func(ctx context.Context, export *repodoc.Export) error
	FindExportsFn  func(ctx context.Context, filter repodoc.ExportFilter) ([]*repodoc.Export, error)
}

func (s *ExportService) CreateExport(ctx context.Context, export *repodoc.Export) error {
	return s.CreateExportFn(ctx, export)
}

func (s *ExportService) FindExports(ctx context.Context, filter repodoc.ExportFilter) ([]*repodoc.Export, error) {
	return s.FindExportsFn(ctx, filter)
}
