package http

import (
	"net/http"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
)

// attendanceQuery reads ?search=&status=&sort_by=&order=
func attendanceQuery(r *http.Request) attendance.AttendanceQuery {
	q := r.URL.Query()
	return attendance.AttendanceQuery{
		Search: q.Get("search"),
		Status: q.Get("status"),
		SortBy: q.Get("sort_by"),
		Order:  attendance.SortOrder(q.Get("order")),
	}
}

// lateStayQuery reads ?search=&gender=&project_id=&office=&sort_by=&order=
func lateStayQuery(r *http.Request) attendance.LateStayQuery {
	q := r.URL.Query()
	return attendance.LateStayQuery{
		Search:    q.Get("search"),
		Gender:    q.Get("gender"),
		ProjectID: q.Get("project_id"),
		Office:    q.Get("office"),
		SortBy:    q.Get("sort_by"),
		Order:     attendance.SortOrder(q.Get("order")),
	}
}

// viewQuery reads both table filters. Late-stay parameters carry an "ls_" prefix.
func viewQuery(r *http.Request) dashboard.ViewQuery {
	q := r.URL.Query()
	return dashboard.ViewQuery{
		Attendance: attendanceQuery(r),
		LateStay: attendance.LateStayQuery{
			Search:    q.Get("ls_search"),
			Gender:    q.Get("gender"),
			ProjectID: q.Get("project_id"),
			Office:    q.Get("office"),
			SortBy:    q.Get("ls_sort_by"),
			Order:     attendance.SortOrder(q.Get("ls_order")),
		},
	}
}
