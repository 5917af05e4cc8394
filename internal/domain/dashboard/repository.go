package dashboard

import (
	"context"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/report"
)

// Source defines the upstream reads that make up one dashboard batch.
// Empty date lets the upstream pick its default day.
type Source interface {
	// GetAttendanceRecords returns all attendance records of a date
	GetAttendanceRecords(ctx context.Context, date string) (*attendance.Day, error)

	// GetLateStay returns employees who checked out at or after 20:00
	GetLateStay(ctx context.Context, date string) (*attendance.LateStayList, error)

	// GetWomenLateStay returns the female subset of GetLateStay
	GetWomenLateStay(ctx context.Context, date string) (*attendance.WomenLateStayList, error)

	// GetCompliance returns the WFO/WFH compliance summary
	GetCompliance(ctx context.Context, date string) (*report.ComplianceSummary, error)

	// GetProjectWorkBalance returns the work-balance report of a project
	GetProjectWorkBalance(ctx context.Context, projectID string, date string) (*report.ProjectReport, error)
}
