package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/report"
)

type ReportServiceImpl struct {
	dashboardService dashboard.DashboardService
	logger           *slog.Logger
	now              func() time.Time
}

func NewReportService(dashboardService dashboard.DashboardService, logger *slog.Logger) *ReportServiceImpl {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ReportServiceImpl{
		dashboardService: dashboardService,
		logger:           logger,
		now:              time.Now,
	}
}

var _ report.ReportService = (*ReportServiceImpl)(nil)

// Filename returns the download name of a report, e.g. attendance_report_2025-11-20.csv
func Filename(date string, format report.Format) string {
	return fmt.Sprintf("attendance_report_%s.%s", date, format)
}

// Export renders the snapshot of req.Date. The report is built in memory
// first so nothing reaches w when generation fails.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.ExportRequest, w io.Writer) (*report.ExportResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := s.dashboardService.Load(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now()
	var buf bytes.Buffer
	switch req.Format {
	case report.FormatXLSX:
		err = WriteXLSX(&buf, snapshot, generatedAt)
	default:
		err = WriteCSV(&buf, snapshot, generatedAt)
	}
	if err != nil {
		s.logger.Error("report generation failed", "format", req.Format, "snapshot_id", snapshot.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	result := &report.ExportResult{
		Filename:    Filename(snapshot.Date, req.Format),
		ContentType: req.Format.ContentType(),
		SnapshotID:  snapshot.ID,
		Bytes:       buf.Len(),
	}
	if _, err := buf.WriteTo(w); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	s.logger.Info("report exported", "filename", result.Filename, "bytes", result.Bytes)
	return result, nil
}
