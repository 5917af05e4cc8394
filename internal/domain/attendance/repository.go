package attendance

import (
	"context"
)

// AttendanceRepository reads per-employee attendance data from the upstream API.
// Empty date lets the upstream pick its latest day.
type AttendanceRepository interface {
	// GetEmployeeSummary retrieves one employee's attendance for a date
	GetEmployeeSummary(ctx context.Context, employeeID string, date string) (*EmployeeSummary, error)

	// GetWellbeing retrieves work-pattern recommendations, for one employee when employeeID is set
	GetWellbeing(ctx context.Context, employeeID string, date string) (*Wellbeing, error)

	// GetDailyCount retrieves the number of people in the office
	GetDailyCount(ctx context.Context, date string) (*DailyCount, error)
}
