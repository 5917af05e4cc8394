package attendance

import "errors"

// Attendance domain errors
var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInvalidDate       = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidEmployeeID = errors.New("employee_id is invalid")
)
