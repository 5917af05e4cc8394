package http

import (
	"net/http"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard loads the snapshot of ?date= and returns the full view
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// Refresh forces a new batch from the upstream API
	Refresh(w http.ResponseWriter, r *http.Request)
	// GetAttendance returns the filtered attendance table. Like every partial
	// view it reads the snapshot of ?date=, the day the client is displaying.
	GetAttendance(w http.ResponseWriter, r *http.Request)
	// GetLateStay returns the filtered late-stay table
	GetLateStay(w http.ResponseWriter, r *http.Request)
	// GetCharts returns chart datasets
	GetCharts(w http.ResponseWriter, r *http.Request)
	// GetProjects returns project work-balance cards
	GetProjects(w http.ResponseWriter, r *http.Request)
	// GetBreakdown returns late-stay aggregates
	GetBreakdown(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date") // format: YYYY-MM-DD, default: today

	result, err := h.dashboardService.View(r.Context(), date, viewQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Refresh handles POST /dashboard/refresh
func (h *dashboardHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	snapshot, err := h.dashboardService.Refresh(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Dashboard refreshed", dashboard.RefreshEvent{
		SnapshotID: snapshot.ID,
		Date:       snapshot.Date,
		FetchedAt:  snapshot.FetchedAt,
	})
}

// GetAttendance handles GET /dashboard/attendance
func (h *dashboardHandlerImpl) GetAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.AttendanceTable(r.Context(), r.URL.Query().Get("date"), attendanceQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetLateStay handles GET /dashboard/late-stay
func (h *dashboardHandlerImpl) GetLateStay(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.LateStayTable(r.Context(), r.URL.Query().Get("date"), lateStayQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetCharts handles GET /dashboard/charts
func (h *dashboardHandlerImpl) GetCharts(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Charts(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetProjects handles GET /dashboard/projects
func (h *dashboardHandlerImpl) GetProjects(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.ProjectCards(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetBreakdown handles GET /dashboard/breakdown
func (h *dashboardHandlerImpl) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Breakdown(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
