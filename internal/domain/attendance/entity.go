package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/validator"
)

// Day-boundary thresholds, compared as zero-padded "HH:MM" strings.
const (
	OnTimeThreshold   = "09:00"
	LateStayThreshold = "20:00"
)

type Status string

const (
	StatusOnTime      Status = "on-time"
	StatusLateArrival Status = "late-arrival"
	StatusLateStay    Status = "late-stay"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusOnTime, StatusLateArrival, StatusLateStay}

// Label returns the badge text shown in tables
func (s Status) Label() string {
	switch s {
	case StatusLateStay:
		return "Late Stay"
	case StatusLateArrival:
		return "Late Arrival"
	default:
		return "On Time"
	}
}

// Class returns the badge CSS class
func (s Status) Class() string {
	switch s {
	case StatusLateStay:
		return "status-late-stay"
	case StatusLateArrival:
		return "status-late"
	default:
		return "status-on-time"
	}
}

// ParseStatus accepts a status name in any case with surrounding whitespace.
func ParseStatus(s string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}

// Classify derives the record status. Late stay wins over late arrival.
// Times are compared lexicographically, which matches chronological order for
// zero-padded 24-hour strings within a single day.
func Classify(checkin, checkout string) Status {
	if checkout >= LateStayThreshold {
		return StatusLateStay
	}
	if checkin > OnTimeThreshold {
		return StatusLateArrival
	}
	return StatusOnTime
}

type Record struct {
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name,omitempty"`
	Gender       string `json:"gender,omitempty"`
	ProjectID    string `json:"project_id,omitempty"`
	CheckinTime  string `json:"checkin_time"`
	CheckoutTime string `json:"checkout_time"`
	TotalHours   string `json:"total_hours,omitempty"`
	Building     string `json:"building,omitempty"`
	Office       string `json:"office,omitempty"`
}

func (r Record) Status() Status {
	return Classify(r.CheckinTime, r.CheckoutTime)
}

// WorkDuration is the time between check-in and check-out of the record.
func (r Record) WorkDuration() time.Duration {
	return WorkDuration(r.CheckinTime, r.CheckoutTime)
}

// parseClock parses "HH:MM" into minutes after midnight.
func parseClock(s string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// NormalizeClock zero-pads clocks such as "9:05" so that string comparison
// stays chronological. Anything that is not a clock is only trimmed.
func NormalizeClock(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || validator.IsValidClock(s) {
		return s
	}
	minutes, ok := parseClock(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ClockHours converts "HH:MM" into fractional hours for chart datasets.
// Malformed input yields 0.
func ClockHours(s string) float64 {
	minutes, ok := parseClock(s)
	if !ok {
		return 0
	}
	return float64(minutes) / 60
}

// WorkDuration returns checkout minus checkin. A checkout earlier than the
// checkin is treated as the next day. Malformed input yields 0.
func WorkDuration(checkin, checkout string) time.Duration {
	in, ok := parseClock(checkin)
	if !ok {
		return 0
	}
	out, ok := parseClock(checkout)
	if !ok {
		return 0
	}
	if out < in {
		out += 24 * 60
	}
	return time.Duration(out-in) * time.Minute
}

// FormatHours renders a duration as "Xh Ym".
func FormatHours(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Minute)
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

// ParseHours parses the "Xh Ym" form produced by the upstream API.
func ParseHours(s string) (time.Duration, bool) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%dh %dm", &h, &m); err != nil {
		return 0, false
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, true
}

// EmployeeSummary is a single employee's attendance for a day.
type EmployeeSummary struct {
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	Date        string `json:"date,omitempty"`
	Checkin     string `json:"checkin"`
	Checkout    string `json:"checkout"`
	TotalHours  string `json:"total_hours"`
	LateArrival bool   `json:"late_arrival"`
	Building    string `json:"building,omitempty"`
	Office      string `json:"office,omitempty"`
}

type Recommendation struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// Wellbeing holds work-pattern recommendations for one employee or the whole office.
type Wellbeing struct {
	EmployeeID      string           `json:"employee_id,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
}

// DailyCount is the number of people in the office for a day.
type DailyCount struct {
	Date          string         `json:"date,omitempty"`
	TotalPeople   int            `json:"total_people"`
	CountByOffice map[string]int `json:"count_by_office"`
}
