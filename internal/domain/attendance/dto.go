package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/validator"
)

// ========================================
// UPSTREAM PAYLOADS
// ========================================

// Day is the attendance of one date. The upstream API returns either
// {"date": ..., "attendance_records": [...]} or a bare array of records.
type Day struct {
	Date    string   `json:"date,omitempty"`
	Records []Record `json:"attendance_records"`
}

func (d *Day) UnmarshalJSON(data []byte) error {
	list, fields, err := splitEnvelope(data, "attendance_records")
	if err != nil {
		return err
	}

	var records []Record
	if err := decodeList(list, &records); err != nil {
		return err
	}

	for i := range records {
		records[i].CheckinTime = NormalizeClock(records[i].CheckinTime)
		records[i].CheckoutTime = NormalizeClock(records[i].CheckoutTime)
	}

	d.Date = stringField(fields, "date")
	d.Records = records
	return nil
}

func (l *LateStayList) UnmarshalJSON(data []byte) error {
	list, fields, err := splitEnvelope(data, "late_stay_employees")
	if err != nil {
		return err
	}

	var employees []LateStayEmployee
	if err := decodeList(list, &employees); err != nil {
		return err
	}

	normalizeCheckouts(employees)

	l.Date = stringField(fields, "date")
	l.Employees = employees
	l.TotalCount = len(employees)
	if n, ok := intField(fields, "total_count"); ok {
		l.TotalCount = n
	}
	_, l.FemaleCount = GenderCounts(employees)
	if n, ok := intField(fields, "female_count"); ok {
		l.FemaleCount = n
	}
	return nil
}

func (l *WomenLateStayList) UnmarshalJSON(data []byte) error {
	list, fields, err := splitEnvelope(data, "women_late_stay_employees")
	if err != nil {
		return err
	}

	var employees []LateStayEmployee
	if err := decodeList(list, &employees); err != nil {
		return err
	}

	normalizeCheckouts(employees)

	l.Date = stringField(fields, "date")
	l.Employees = employees
	l.Count = len(employees)
	if n, ok := intField(fields, "count"); ok {
		l.Count = n
	}
	return nil
}

// splitEnvelope separates a list payload from its object wrapper. A bare array
// is returned as is. For an object, the value under key is used, falling back
// to the first array-valued field in document order.
func splitEnvelope(data []byte, key string) (json.RawMessage, map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil, nil
	}
	if trimmed[0] == '[' {
		return trimmed, nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected an object or an array, got %v", tok)
	}

	fields := make(map[string]json.RawMessage)
	var firstArray json.RawMessage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		name, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		fields[name] = value
		if firstArray == nil && len(value) > 0 && value[0] == '[' {
			firstArray = value
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	if raw, ok := fields[key]; ok {
		return raw, fields, nil
	}
	return firstArray, fields, nil
}

func normalizeCheckouts(employees []LateStayEmployee) {
	for i := range employees {
		employees[i].CheckoutTime = NormalizeClock(employees[i].CheckoutTime)
	}
}

func decodeList[T any](raw json.RawMessage, out *[]T) error {
	*out = []T{}
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func stringField(fields map[string]json.RawMessage, key string) string {
	var s *string
	if raw, ok := fields[key]; ok && json.Unmarshal(raw, &s) == nil && s != nil {
		return *s
	}
	return ""
}

func intField(fields map[string]json.RawMessage, key string) (int, bool) {
	var n *int
	if raw, ok := fields[key]; ok && json.Unmarshal(raw, &n) == nil && n != nil {
		return *n, true
	}
	return 0, false
}

// ========================================
// TABLE QUERIES
// ========================================

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Attendance table sort keys
const (
	SortByEmployeeID   = "employee_id"
	SortByName         = "name"
	SortByCheckinTime  = "checkin_time"
	SortByCheckoutTime = "checkout_time"
	SortByTotalHours   = "total_hours"
	SortByStatus       = "status"
	SortByGender       = "gender"
	SortByProjectID    = "project_id"
	SortByOffice       = "office"
)

var attendanceSortKeys = []string{
	SortByEmployeeID, SortByName, SortByCheckinTime, SortByCheckoutTime, SortByTotalHours, SortByStatus,
}

var lateStaySortKeys = []string{
	SortByEmployeeID, SortByName, SortByGender, SortByCheckoutTime, SortByProjectID, SortByOffice,
}

type AttendanceQuery struct {
	Search string    `json:"search,omitempty"`
	Status string    `json:"status,omitempty"`
	SortBy string    `json:"sort_by,omitempty"`
	Order  SortOrder `json:"order,omitempty"`
}

func (q *AttendanceQuery) Validate() error {
	var errs validator.ValidationErrors

	q.Search = strings.TrimSpace(q.Search)
	q.Status = strings.TrimSpace(q.Status)
	if q.Status != "" {
		status, ok := ParseStatus(q.Status)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of on-time, late-arrival, late-stay",
			})
		}
		q.Status = string(status)
	}

	errs = append(errs, validateSort(&q.SortBy, &q.Order, attendanceSortKeys)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LateStayQuery struct {
	Search    string    `json:"search,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	ProjectID string    `json:"project_id,omitempty"`
	Office    string    `json:"office,omitempty"`
	SortBy    string    `json:"sort_by,omitempty"`
	Order     SortOrder `json:"order,omitempty"`
}

func (q *LateStayQuery) Validate() error {
	var errs validator.ValidationErrors

	q.Search = strings.TrimSpace(q.Search)
	q.Gender = strings.TrimSpace(q.Gender)
	q.ProjectID = strings.TrimSpace(q.ProjectID)
	q.Office = strings.TrimSpace(q.Office)

	errs = append(errs, validateSort(&q.SortBy, &q.Order, lateStaySortKeys)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateSort(sortBy *string, order *SortOrder, keys []string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	*sortBy = strings.ToLower(strings.TrimSpace(*sortBy))
	*order = SortOrder(strings.ToLower(strings.TrimSpace(string(*order))))

	if *sortBy != "" && !validator.IsInSlice(*sortBy, keys) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "sort_by must be one of " + strings.Join(keys, ", "),
		})
	}
	switch *order {
	case "":
		*order = SortAsc
	case SortAsc, SortDesc:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "order",
			Message: "order must be asc or desc",
		})
	}
	return errs
}
