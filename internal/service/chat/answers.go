package chat

import (
	"fmt"
	"strings"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/report"
)

// maxListed bounds how many employee ids an answer spells out
const maxListed = 5

type answerFunc func(s *dashboard.Snapshot, question string) string

var answerers = map[string]answerFunc{
	"present_count":         answerPresent,
	"absent_count":          answerAbsent,
	"late_stay_count":       answerLateStay,
	"women_late_stay":       answerWomenLateStay,
	"late_arrivals":         answerLateArrivals,
	"compliance":            answerCompliance,
	"wfo_compliance":        answerWFO,
	"wfh_compliance":        answerWFH,
	"top_late_stay_project": answerTopProject,
	"late_stay_by_office":   answerByOffice,
	"project_hours":         answerProjectHours,
	"night_shift":           answerNightShift,
	"recommendations":       answerRecommendations,
	"employee_status":       answerEmployeeStatus,
}

func answerPresent(s *dashboard.Snapshot, _ string) string {
	present := len(s.Attendance.Records)
	if total := s.Compliance.TotalEmployees; total > 0 {
		return fmt.Sprintf("%d of %d employees are present on %s.", present, total, s.Date)
	}
	return fmt.Sprintf("%d employees are present on %s.", present, s.Date)
}

func answerAbsent(s *dashboard.Snapshot, _ string) string {
	c := s.Compliance
	return fmt.Sprintf("%d of %d employees are absent on %s.", c.AbsentEmployees, c.TotalEmployees, s.Date)
}

func answerLateStay(s *dashboard.Snapshot, _ string) string {
	count := s.LateStayCount()
	if count == 0 {
		return fmt.Sprintf("No employees stayed after %s on %s.", attendance.LateStayThreshold, s.Date)
	}
	return fmt.Sprintf("%d employees stayed after %s on %s: %s.",
		count, attendance.LateStayThreshold, s.Date, listIDs(s.LateStay.Employees))
}

func answerWomenLateStay(s *dashboard.Snapshot, _ string) string {
	count := s.WomenLateStay.Count
	if count == 0 {
		count = len(s.WomenLateStay.Employees)
	}
	if count == 0 {
		return fmt.Sprintf("No women stayed after %s on %s.", attendance.LateStayThreshold, s.Date)
	}
	return fmt.Sprintf("%d women stayed after %s on %s: %s.",
		count, attendance.LateStayThreshold, s.Date, listIDs(s.WomenLateStay.Employees))
}

func answerLateArrivals(s *dashboard.Snapshot, _ string) string {
	var late []string
	for _, r := range s.Attendance.Records {
		if r.Status() == attendance.StatusLateArrival {
			late = append(late, r.EmployeeID)
		}
	}
	if len(late) == 0 {
		return fmt.Sprintf("Nobody arrived after %s on %s.", attendance.OnTimeThreshold, s.Date)
	}
	return fmt.Sprintf("%d employees arrived after %s on %s: %s.",
		len(late), attendance.OnTimeThreshold, s.Date, truncateList(late))
}

func answerCompliance(s *dashboard.Snapshot, _ string) string {
	c := s.Compliance
	return fmt.Sprintf("Overall compliance is %s (%s): %d of %d employees present.",
		formatPercent(c.CompliancePercentage), c.StatusLabel(), c.PresentEmployees, c.TotalEmployees)
}

func answerWFO(s *dashboard.Snapshot, _ string) string {
	c := s.Compliance
	return fmt.Sprintf("WFO compliance is %s: %d of %d work-from-office employees present.",
		formatPercent(c.WFOCompliancePercentage), c.WFOPresent, c.WFOTotal)
}

func answerWFH(s *dashboard.Snapshot, _ string) string {
	c := s.Compliance
	return fmt.Sprintf("WFH compliance is %s: %d of %d work-from-home employees present.",
		formatPercent(c.WFHCompliancePercentage), c.WFHPresent, c.WFHTotal)
}

func answerTopProject(s *dashboard.Snapshot, _ string) string {
	buckets := attendance.ByProject(s.LateStay.Employees)
	if len(buckets) == 0 {
		return fmt.Sprintf("No employees stayed late on %s.", s.Date)
	}
	top := buckets[0]
	return fmt.Sprintf("%s has the most late stays with %d employees.", projectLabel(s.Projects, top.Key), top.Count)
}

func answerByOffice(s *dashboard.Snapshot, _ string) string {
	buckets := attendance.ByOffice(s.LateStay.Employees)
	if len(buckets) == 0 {
		return fmt.Sprintf("No employees stayed late on %s.", s.Date)
	}
	return "Late stays by office: " + joinBuckets(buckets) + "."
}

// answerProjectHours answers for the project named in the question, or for all of them
func answerProjectHours(s *dashboard.Snapshot, question string) string {
	if len(s.Projects) == 0 {
		return "No project work-balance data is loaded."
	}
	if p, ok := findProject(s.Projects, question); ok {
		return fmt.Sprintf("%s averages %s of work across %d employees (late-night frequency %s).",
			projectLabel(s.Projects, p.ProjectID), p.AverageWorkHours, p.TotalEmployees, p.LateNightFrequency)
	}
	parts := make([]string, 0, len(s.Projects))
	for _, p := range s.Projects {
		parts = append(parts, fmt.Sprintf("%s %s", projectLabel(s.Projects, p.ProjectID), p.AverageWorkHours))
	}
	return "Average work hours: " + strings.Join(parts, ", ") + "."
}

func answerNightShift(s *dashboard.Snapshot, _ string) string {
	var names []string
	for _, p := range s.Projects {
		if p.RequiresNightShift {
			names = append(names, projectLabel(s.Projects, p.ProjectID))
		}
	}
	if len(names) == 0 {
		return "No project requires a night shift."
	}
	return "Night shift required for: " + strings.Join(names, ", ") + "."
}

func answerRecommendations(s *dashboard.Snapshot, question string) string {
	if p, ok := findProject(s.Projects, question); ok {
		return fmt.Sprintf("%s: %s", projectLabel(s.Projects, p.ProjectID), p.Recommendation)
	}
	var lines []string
	for _, p := range s.Projects {
		if strings.TrimSpace(p.Recommendation) != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", p.ProjectID, p.Recommendation))
		}
	}
	if len(lines) == 0 {
		return "There are no recommendations right now."
	}
	return strings.Join(lines, "\n")
}

// answerEmployeeStatus is reached only when no known employee id was found in the question
func answerEmployeeStatus(s *dashboard.Snapshot, _ string) string {
	example := "E001"
	if len(s.Attendance.Records) > 0 {
		example = s.Attendance.Records[0].EmployeeID
	}
	return fmt.Sprintf("I couldn't find that employee on %s. Ask with an employee id, for example \"What is the status of %s?\"", s.Date, example)
}

// describeEmployee answers for an employee id found in the question
func describeEmployee(s *dashboard.Snapshot, r attendance.Record) string {
	name := r.EmployeeID
	if strings.TrimSpace(r.Name) != "" {
		name = fmt.Sprintf("%s (%s)", r.Name, r.EmployeeID)
	}
	hours := r.TotalHours
	if strings.TrimSpace(hours) == "" {
		hours = attendance.FormatHours(r.WorkDuration())
	}
	return fmt.Sprintf("%s checked in at %s and out at %s on %s: %s, %s worked.",
		name, r.CheckinTime, r.CheckoutTime, s.Date, r.Status().Label(), hours)
}

func findEmployee(s *dashboard.Snapshot, question string) (attendance.Record, bool) {
	for _, token := range tokens(question) {
		if r, ok := s.FindEmployee(token); ok {
			return r, true
		}
	}
	return attendance.Record{}, false
}

func findProject(projects []report.ProjectReport, question string) (report.ProjectReport, bool) {
	for _, token := range tokens(question) {
		for _, p := range projects {
			if strings.EqualFold(p.ProjectID, token) {
				return p, true
			}
		}
	}
	return report.ProjectReport{}, false
}

// tokens splits a question into identifier-like words
func tokens(question string) []string {
	return strings.FieldsFunc(question, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_')
	})
}

func projectLabel(projects []report.ProjectReport, projectID string) string {
	for _, p := range projects {
		if p.ProjectID == projectID && p.ProjectName != "" {
			return fmt.Sprintf("%s (%s)", p.ProjectName, p.ProjectID)
		}
	}
	return projectID
}

func listIDs(employees []attendance.LateStayEmployee) string {
	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.EmployeeID)
	}
	return truncateList(ids)
}

func truncateList(ids []string) string {
	if len(ids) <= maxListed {
		return strings.Join(ids, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(ids[:maxListed], ", "), len(ids)-maxListed)
}

func joinBuckets(buckets []attendance.Bucket) string {
	parts := make([]string, 0, len(buckets))
	for _, b := range buckets {
		parts = append(parts, fmt.Sprintf("%s %d", b.Key, b.Count))
	}
	return strings.Join(parts, ", ")
}

func formatPercent(pct float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", pct), "0"), ".") + "%"
}
