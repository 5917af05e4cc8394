package response

import (
	"errors"
	"net/http"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/report"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/validator"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/repository/upstream"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Dashboard domain errors
	case errors.Is(err, dashboard.ErrNoSnapshot):
		NotFound(w, "No attendance data available")
	case errors.Is(err, dashboard.ErrRefreshFailed):
		BadGateway(w, dashboard.RefreshFailedMessage)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidFormat):
		BadRequest(w, report.ErrInvalidFormat.Error(), nil)
	case errors.Is(err, report.ErrReportGenerationFailed):
		InternalServerError(w, "Failed to generate report")

	// Upstream errors
	case errors.Is(err, upstream.ErrNotFound):
		NotFound(w, "Resource not found")
	case isUpstreamError(err):
		BadGateway(w, "Upstream API request failed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

func isUpstreamError(err error) bool {
	var apiErr *upstream.APIError
	return errors.As(err, &apiErr)
}
