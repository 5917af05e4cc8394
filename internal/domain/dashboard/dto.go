package dashboard

import (
	"strings"
	"time"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
)

// ========== FULL VIEW ==========

// View is the complete render of a snapshot
type View struct {
	SnapshotID string          `json:"snapshot_id"`
	Date       string          `json:"date"`
	FetchedAt  time.Time       `json:"fetched_at"`
	Stats      StatCards       `json:"stats"`
	Attendance AttendanceTable `json:"attendance"`
	LateStay   LateStayTable   `json:"late_stay"`
	Charts     Charts          `json:"charts"`
	Projects   []ProjectCard   `json:"projects"`
	Breakdown  Breakdown       `json:"breakdown"`
}

// ViewQuery carries the table filters applied while rendering
type ViewQuery struct {
	Attendance attendance.AttendanceQuery `json:"attendance"`
	LateStay   attendance.LateStayQuery   `json:"late_stay"`
}

func (q *ViewQuery) Validate() error {
	if err := q.Attendance.Validate(); err != nil {
		return err
	}
	return q.LateStay.Validate()
}

// ========== STAT CARDS ==========

type StatCards struct {
	TotalPresent         int     `json:"total_present"`
	LateStayCount        int     `json:"late_stay_count"`
	WomenLateStay        int     `json:"women_late_stay"`
	WFOCompliance        string  `json:"wfo_compliance"` // e.g. "85.5%"
	CompliancePercentage float64 `json:"compliance_percentage"`
	ComplianceStatus     string  `json:"compliance_status"`
}

// ========== TABLES ==========

const (
	EmptyAttendanceMessage = "No attendance records found"
	EmptyLateStayMessage   = "No late stay employees today"
	Placeholder            = "-"
)

type AttendanceRow struct {
	EmployeeID   string            `json:"employee_id"`
	Name         string            `json:"name"`
	CheckinTime  string            `json:"checkin_time"`
	CheckoutTime string            `json:"checkout_time"`
	TotalHours   string            `json:"total_hours"`
	Status       attendance.Status `json:"status"`
	StatusLabel  string            `json:"status_label"`
	StatusClass  string            `json:"status_class"`
}

// AttendanceTable is a filtered table. SnapshotID and Date identify the batch
// it was cut from and are left empty inside a full View.
type AttendanceTable struct {
	SnapshotID   string                     `json:"snapshot_id,omitempty"`
	Date         string                     `json:"date,omitempty"`
	Rows         []AttendanceRow            `json:"rows"`
	Total        int                        `json:"total"`
	EmptyMessage string                     `json:"empty_message,omitempty"`
	Query        attendance.AttendanceQuery `json:"query"`
}

type LateStayRow struct {
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Gender       string `json:"gender"`
	CheckoutTime string `json:"checkout_time"`
	ProjectID    string `json:"project_id"`
	Office       string `json:"office"`
}

type LateStayTable struct {
	SnapshotID   string                   `json:"snapshot_id,omitempty"`
	Date         string                   `json:"date,omitempty"`
	Rows         []LateStayRow            `json:"rows"`
	Total        int                      `json:"total"`
	EmptyMessage string                   `json:"empty_message,omitempty"`
	Query        attendance.LateStayQuery `json:"query"`
}

// ========== CHARTS ==========

const (
	ChartBar      = "bar"
	ChartDoughnut = "doughnut"
)

type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"background_color"`
	BorderColor     []string  `json:"border_color"`
	BorderWidth     int       `json:"border_width"`
}

type Chart struct {
	Type     string    `json:"type"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Charts holds the attendance bar chart and the late-stay gender doughnut
type Charts struct {
	SnapshotID string `json:"snapshot_id,omitempty"`
	Date       string `json:"date,omitempty"`
	Attendance Chart  `json:"attendance"`
	Gender     Chart  `json:"gender"`
}

// ========== PROJECT CARDS ==========

type ProjectCard struct {
	ProjectID          string   `json:"project_id"`
	ProjectName        string   `json:"project_name"`
	AverageWorkHours   string   `json:"average_work_hours"`
	LateNightFrequency string   `json:"late_night_frequency"`
	TotalEmployees     int      `json:"total_employees"`
	NightShiftRequired string   `json:"night_shift_required"` // "Yes" / "No"
	Recommendation     string   `json:"recommendation"`
	LateStayCount      int      `json:"late_stay_count"`
	LateStayEmployees  []string `json:"late_stay_employees"`
}

// ========== BREAKDOWN ==========

// Breakdown aggregates late-stay employees
type Breakdown struct {
	SnapshotID string              `json:"snapshot_id,omitempty"`
	Date       string              `json:"date,omitempty"`
	ByProject  []attendance.Bucket `json:"by_project"`
	ByOffice   []attendance.Bucket `json:"by_office"`
	ByGender   []attendance.Bucket `json:"by_gender"`
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
