package dashboard

import (
	"time"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/report"
)

// Snapshot is one complete batch fetched from the upstream API. A published
// snapshot is never modified; a refresh replaces it wholesale.
type Snapshot struct {
	ID            string                       `json:"id"`
	Date          string                       `json:"date"`
	FetchedAt     time.Time                    `json:"fetched_at"`
	Attendance    attendance.Day               `json:"attendance"`
	LateStay      attendance.LateStayList      `json:"late_stay"`
	WomenLateStay attendance.WomenLateStayList `json:"women_late_stay"`
	Compliance    report.ComplianceSummary     `json:"compliance"`
	Projects      []report.ProjectReport       `json:"projects"`
}

// FindEmployee returns the attendance record of employeeID, matched case-insensitively
func (s *Snapshot) FindEmployee(employeeID string) (attendance.Record, bool) {
	for _, r := range s.Attendance.Records {
		if equalFold(r.EmployeeID, employeeID) {
			return r, true
		}
	}
	return attendance.Record{}, false
}

// LateStayCount prefers the upstream total over the list length
func (s *Snapshot) LateStayCount() int {
	if s.LateStay.TotalCount > 0 {
		return s.LateStay.TotalCount
	}
	return len(s.LateStay.Employees)
}

// Event topics published on refresh
const (
	Topic          = "dashboard"
	EventRefreshed = "dashboard.refreshed"
	EventError     = "dashboard.error"
)

// RefreshEvent is the payload of EventRefreshed
type RefreshEvent struct {
	SnapshotID string    `json:"snapshot_id"`
	Date       string    `json:"date"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// ErrorEvent is the payload of EventError
type ErrorEvent struct {
	Date    string `json:"date"`
	Message string `json:"message"`
}
