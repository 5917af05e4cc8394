package upstream

import (
	"context"
	"errors"
	"fmt"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
)

type attendanceRepository struct {
	*Client
}

func NewAttendanceRepository(c *Client) attendance.AttendanceRepository {
	return &attendanceRepository{Client: c}
}

func (r *attendanceRepository) GetEmployeeSummary(ctx context.Context, employeeID string, date string) (*attendance.EmployeeSummary, error) {
	var summary attendance.EmployeeSummary
	query := map[string]string{"employee_id": employeeID, "date": date}
	if err := r.getJSON(ctx, "/attendance/summary", query, &summary); err != nil {
		return nil, employeeError(err)
	}
	return &summary, nil
}

func (r *attendanceRepository) GetWellbeing(ctx context.Context, employeeID string, date string) (*attendance.Wellbeing, error) {
	var wellbeing attendance.Wellbeing
	query := map[string]string{"employee_id": employeeID, "date": date}
	if err := r.getJSON(ctx, "/reports/wellbeing-recommendations", query, &wellbeing); err != nil {
		return nil, employeeError(err)
	}
	return &wellbeing, nil
}

func (r *attendanceRepository) GetDailyCount(ctx context.Context, date string) (*attendance.DailyCount, error) {
	var count attendance.DailyCount
	if err := r.getJSON(ctx, "/attendance/daily-count", map[string]string{"date": date}, &count); err != nil {
		return nil, err
	}
	return &count, nil
}

// employeeError tags a 404 as ErrEmployeeNotFound while keeping the APIError
func employeeError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %w", attendance.ErrEmployeeNotFound, err)
	}
	return err
}
