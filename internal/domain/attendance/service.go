package attendance

import (
	"context"
)

// AttendanceService exposes per-employee lookups next to the cached dashboard
type AttendanceService interface {
	// GetEmployeeSummary returns an employee's attendance with derived status
	GetEmployeeSummary(ctx context.Context, employeeID string, date string) (*EmployeeSummaryResponse, error)

	// GetWellbeing returns wellbeing recommendations
	GetWellbeing(ctx context.Context, employeeID string, date string) (*Wellbeing, error)

	// GetDailyCount returns the daily people count
	GetDailyCount(ctx context.Context, date string) (*DailyCount, error)
}

// EmployeeSummaryResponse is an EmployeeSummary with the dashboard status applied
type EmployeeSummaryResponse struct {
	EmployeeSummary
	Status      Status `json:"status"`
	StatusLabel string `json:"status_label"`
	WorkMinutes int    `json:"work_minutes"`
}
