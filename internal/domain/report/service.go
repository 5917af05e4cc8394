package report

import (
	"context"
	"io"
)

// ReportService builds downloadable reports from the cached dashboard snapshot
type ReportService interface {
	// Export writes the report for the requested date and format to w
	Export(ctx context.Context, req ExportRequest, w io.Writer) (*ExportResult, error)
}
