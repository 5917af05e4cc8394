package http

import (
	"bytes"
	"net/http"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/report"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/handler/http/response"
)

type ReportHandler interface {
	// Export handles GET /reports/export?format=csv|xlsx&date=
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := report.ExportRequest{
		Date:   r.URL.Query().Get("date"),
		Format: report.Format(r.URL.Query().Get("format")),
	}

	var buf bytes.Buffer
	result, err := h.reportService.Export(r.Context(), req, &buf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("X-Snapshot-ID", result.SnapshotID)
	response.Attachment(w, result.Filename, result.ContentType, buf.Bytes())
}
