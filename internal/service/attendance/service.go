package attendance

import (
	"context"
	"strings"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
}

func NewAttendanceService(repo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{AttendanceRepository: repo}
}

// validateLookup trims and checks an employee id and an optional date
func validateLookup(employeeID, date *string, requireEmployee bool) error {
	var errs validator.ValidationErrors

	*employeeID = strings.TrimSpace(*employeeID)
	if *employeeID == "" {
		if requireEmployee {
			errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
		}
	} else if !validator.IsValidIdentifier(*employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: attendance.ErrInvalidEmployeeID.Error()})
	}

	*date = strings.TrimSpace(*date)
	if *date != "" {
		if _, ok := validator.IsValidDate(*date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: attendance.ErrInvalidDate.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GetEmployeeSummary applies the dashboard classification to the upstream
// summary, so the status always agrees with the attendance table.
func (s *AttendanceServiceImpl) GetEmployeeSummary(ctx context.Context, employeeID string, date string) (*attendance.EmployeeSummaryResponse, error) {
	if err := validateLookup(&employeeID, &date, true); err != nil {
		return nil, err
	}

	summary, err := s.AttendanceRepository.GetEmployeeSummary(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	status := attendance.Classify(summary.Checkin, summary.Checkout)
	return &attendance.EmployeeSummaryResponse{
		EmployeeSummary: *summary,
		Status:          status,
		StatusLabel:     status.Label(),
		WorkMinutes:     int(attendance.WorkDuration(summary.Checkin, summary.Checkout).Minutes()),
	}, nil
}

func (s *AttendanceServiceImpl) GetWellbeing(ctx context.Context, employeeID string, date string) (*attendance.Wellbeing, error) {
	if err := validateLookup(&employeeID, &date, false); err != nil {
		return nil, err
	}

	wellbeing, err := s.AttendanceRepository.GetWellbeing(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if wellbeing.Recommendations == nil {
		wellbeing.Recommendations = []attendance.Recommendation{}
	}
	return wellbeing, nil
}

func (s *AttendanceServiceImpl) GetDailyCount(ctx context.Context, date string) (*attendance.DailyCount, error) {
	var none string
	if err := validateLookup(&none, &date, false); err != nil {
		return nil, err
	}

	count, err := s.AttendanceRepository.GetDailyCount(ctx, date)
	if err != nil {
		return nil, err
	}
	if count.CountByOffice == nil {
		count.CountByOffice = map[string]int{}
	}
	return count, nil
}
