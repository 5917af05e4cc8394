package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/handler/http/response"
)

type AttendanceHandler interface {
	GetEmployeeSummary(w http.ResponseWriter, r *http.Request)
	GetWellbeing(w http.ResponseWriter, r *http.Request)
	GetDailyCount(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// GetEmployeeSummary handles GET /employees/{employeeID}/summary
func (h *attendanceHandlerImpl) GetEmployeeSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.attendanceService.GetEmployeeSummary(r.Context(), employeeID, r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWellbeing handles GET /employees/{employeeID}/wellbeing
func (h *attendanceHandlerImpl) GetWellbeing(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.attendanceService.GetWellbeing(r.Context(), employeeID, r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDailyCount handles GET /attendance/daily-count
func (h *attendanceHandlerImpl) GetDailyCount(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetDailyCount(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
