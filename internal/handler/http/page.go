package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/validator"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type PageHandler interface {
	// Dashboard handles GET / with the same parameters as GET /api/v1/dashboard
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type pageHandlerImpl struct {
	dashboardService dashboard.DashboardService
	title            string
	logger           *slog.Logger
}

func NewPageHandler(dashboardService dashboard.DashboardService, title string, logger *slog.Logger) PageHandler {
	return &pageHandlerImpl{dashboardService: dashboardService, title: title, logger: logger}
}

type pageData struct {
	Title string
	Date  string
	View  *dashboard.View
	Error string
}

func (h *pageHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	data := pageData{Title: h.title, Date: date}
	status := http.StatusOK

	view, err := h.dashboardService.View(r.Context(), date, viewQuery(r))
	if err != nil {
		status, data.Error = pageError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("dashboard page failed", "error", err)
		}
	} else {
		data.View = view
		data.Date = view.Date
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("failed to render dashboard page", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// pageError maps an error to the status code and toast shown on the page
func pageError(err error) (int, string) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity, verrs.Error()
	case errors.Is(err, dashboard.ErrRefreshFailed):
		return http.StatusBadGateway, dashboard.RefreshFailedMessage
	case errors.Is(err, dashboard.ErrNoSnapshot):
		return http.StatusNotFound, "No attendance data available"
	default:
		return http.StatusInternalServerError, "An unexpected error occurred"
	}
}
