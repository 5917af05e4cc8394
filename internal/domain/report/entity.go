package report

import "github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"

// Late-night frequency levels reported per project
const (
	FrequencyHigh   = "High"
	FrequencyMedium = "Medium"
	FrequencyLow    = "Low"
)

// ComplianceCompliantThreshold is the overall percentage at or above which a day is compliant.
const ComplianceCompliantThreshold = 80.0

const (
	StatusCompliant    = "Compliant"
	StatusNonCompliant = "Non-Compliant"
)

// ComplianceSummary is the WFO/WFH attendance compliance of a day.
type ComplianceSummary struct {
	Date                    string  `json:"date,omitempty"`
	TotalEmployees          int     `json:"total_employees"`
	PresentEmployees        int     `json:"present_employees"`
	AbsentEmployees         int     `json:"absent_employees"`
	CompliancePercentage    float64 `json:"compliance_percentage"`
	WFOTotal                int     `json:"wfo_total"`
	WFOPresent              int     `json:"wfo_present"`
	WFOAbsent               int     `json:"wfo_absent"`
	WFOCompliancePercentage float64 `json:"wfo_compliance_percentage"`
	WFHTotal                int     `json:"wfh_total"`
	WFHPresent              int     `json:"wfh_present"`
	WFHAbsent               int     `json:"wfh_absent"`
	WFHCompliancePercentage float64 `json:"wfh_compliance_percentage"`
	TotalPresent            int     `json:"total_present"`
	Status                  string  `json:"status"`
}

// StatusLabel returns the upstream status, deriving it from the overall
// percentage when the upstream left it empty.
func (c ComplianceSummary) StatusLabel() string {
	if c.Status != "" {
		return c.Status
	}
	if c.CompliancePercentage >= ComplianceCompliantThreshold {
		return StatusCompliant
	}
	return StatusNonCompliant
}

// ProjectReport is the work-balance report of one project.
type ProjectReport struct {
	ProjectID          string `json:"project_id"`
	ProjectName        string `json:"project_name"`
	AverageWorkHours   string `json:"average_work_hours"`
	TotalEmployees     int    `json:"total_employees"`
	LateNightFrequency string `json:"late_night_frequency"`
	LateNightCount     int    `json:"late_night_count"`
	RequiresNightShift bool   `json:"requires_night_shift"`
	Recommendation     string `json:"recommendation"`
	Date               string `json:"date,omitempty"`

	// Joined from the late-stay list by project_id
	LateStayCount     int                           `json:"late_stay_count"`
	LateStayEmployees []attendance.LateStayEmployee `json:"late_stay_employees"`
}

// Enrich joins late-stay employees onto their project reports. The inputs are
// not modified.
func Enrich(reports []ProjectReport, lateStay []attendance.LateStayEmployee) []ProjectReport {
	byProject := make(map[string][]attendance.LateStayEmployee)
	for _, e := range lateStay {
		byProject[e.ProjectID] = append(byProject[e.ProjectID], e)
	}

	enriched := make([]ProjectReport, len(reports))
	for i, r := range reports {
		employees := byProject[r.ProjectID]
		r.LateStayEmployees = append([]attendance.LateStayEmployee{}, employees...)
		r.LateStayCount = len(employees)
		enriched[i] = r
	}
	return enriched
}
