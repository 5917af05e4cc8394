package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/report"
)

const reportTitle = "Attendance & Late-Stay Report"

// Section is one titled table of the export
type Section struct {
	Title string
	// Sheet is the worksheet name used for XLSX, at most 31 characters
	Sheet  string
	Header []string
	Rows   [][]string
}

// BuildSections lays out the snapshot as the ordered report sections.
func BuildSections(s *dashboard.Snapshot, generatedAt time.Time) []Section {
	return []Section{
		titleSection(s, generatedAt),
		complianceSection(s.Compliance),
		attendanceSection(s.Attendance.Records),
		lateStaySection(s.LateStay.Employees),
		breakdownSection(s.LateStay.Employees),
		projectSection(s.Projects),
	}
}

func titleSection(s *dashboard.Snapshot, generatedAt time.Time) Section {
	return Section{
		Title: reportTitle,
		Sheet: "Report",
		Rows: [][]string{
			{"Date", s.Date},
			{"Generated At", generatedAt.Format(time.RFC3339)},
			{"Snapshot ID", s.ID},
		},
	}
}

func complianceSection(c report.ComplianceSummary) Section {
	return Section{
		Title:  "Compliance Summary",
		Sheet:  "Compliance",
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Employees", strconv.Itoa(c.TotalEmployees)},
			{"Present Employees", strconv.Itoa(c.PresentEmployees)},
			{"Absent Employees", strconv.Itoa(c.AbsentEmployees)},
			{"Compliance Percentage", formatFloat(c.CompliancePercentage)},
			{"WFO Total", strconv.Itoa(c.WFOTotal)},
			{"WFO Present", strconv.Itoa(c.WFOPresent)},
			{"WFO Absent", strconv.Itoa(c.WFOAbsent)},
			{"WFO Compliance Percentage", formatFloat(c.WFOCompliancePercentage)},
			{"WFH Total", strconv.Itoa(c.WFHTotal)},
			{"WFH Present", strconv.Itoa(c.WFHPresent)},
			{"WFH Absent", strconv.Itoa(c.WFHAbsent)},
			{"WFH Compliance Percentage", formatFloat(c.WFHCompliancePercentage)},
			{"Status", c.StatusLabel()},
		},
	}
}

func attendanceSection(records []attendance.Record) Section {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.EmployeeID, r.Name, r.CheckinTime, r.CheckoutTime, r.TotalHours, r.Status().Label(),
		})
	}
	return Section{
		Title:  "Attendance Records",
		Sheet:  "Attendance",
		Header: []string{"Employee ID", "Name", "Check-in", "Check-out", "Total Hours", "Status"},
		Rows:   rows,
	}
}

func lateStaySection(employees []attendance.LateStayEmployee) Section {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{e.EmployeeID, e.Name, e.Gender, e.CheckoutTime, e.ProjectID, e.Office})
	}
	return Section{
		Title:  "Late Stay Employees",
		Sheet:  "Late Stay",
		Header: []string{"Employee ID", "Name", "Gender", "Checkout", "Project ID", "Office"},
		Rows:   rows,
	}
}

func breakdownSection(employees []attendance.LateStayEmployee) Section {
	var rows [][]string
	dimensions := []struct {
		name    string
		buckets []attendance.Bucket
	}{
		{"Project", attendance.ByProject(employees)},
		{"Office", attendance.ByOffice(employees)},
		{"Gender", attendance.ByGender(employees)},
	}
	for _, d := range dimensions {
		for _, b := range d.buckets {
			rows = append(rows, []string{d.name, b.Key, strconv.Itoa(b.Count)})
		}
	}
	return Section{
		Title:  "Late Stay Breakdown",
		Sheet:  "Breakdown",
		Header: []string{"Dimension", "Key", "Count"},
		Rows:   rows,
	}
}

func projectSection(projects []report.ProjectReport) Section {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		ids := make([]string, 0, len(p.LateStayEmployees))
		for _, e := range p.LateStayEmployees {
			ids = append(ids, e.EmployeeID)
		}
		rows = append(rows, []string{
			p.ProjectID,
			p.ProjectName,
			p.AverageWorkHours,
			p.LateNightFrequency,
			strconv.Itoa(p.LateNightCount),
			strconv.Itoa(p.TotalEmployees),
			yesNo(p.RequiresNightShift),
			p.Recommendation,
			strconv.Itoa(p.LateStayCount),
			strings.Join(ids, "; "),
		})
	}
	return Section{
		Title: "Project Work Balance",
		Sheet: "Projects",
		Header: []string{
			"Project ID", "Project Name", "Average Work Hours", "Late Night Frequency", "Late Night Count",
			"Total Employees", "Requires Night Shift", "Recommendation", "Late Stay Count", "Late Stay Employees",
		},
		Rows: rows,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
