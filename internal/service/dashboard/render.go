package dashboard

import (
	"strconv"
	"strings"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/report"
)

// Chart colors used by the dashboard page
const (
	checkinColor     = "rgba(99, 102, 241, 0.6)"
	checkinBorder    = "rgba(99, 102, 241, 1)"
	checkoutColor    = "rgba(139, 92, 246, 0.6)"
	checkoutBorder   = "rgba(139, 92, 246, 1)"
	maleColor        = "rgba(99, 102, 241, 0.8)"
	maleBorder       = "rgba(99, 102, 241, 1)"
	femaleColor      = "rgba(239, 68, 68, 0.8)"
	femaleBorder     = "rgba(239, 68, 68, 1)"
	chartBorderWidth = 2
	checkinLabel     = "Check-in Time"
	checkoutLabel    = "Check-out Time"
	nightShiftYes    = "Yes"
	nightShiftNo     = "No"
)

// Render builds the complete view of a snapshot. It has no side effects.
func Render(s *dashboard.Snapshot, q dashboard.ViewQuery) *dashboard.View {
	return &dashboard.View{
		SnapshotID: s.ID,
		Date:       s.Date,
		FetchedAt:  s.FetchedAt,
		Stats:      RenderStatCards(s),
		Attendance: RenderAttendanceTable(s.Attendance.Records, q.Attendance),
		LateStay:   RenderLateStayTable(s.LateStay.Employees, q.LateStay),
		Charts:     RenderCharts(s),
		Projects:   RenderProjectCards(s.Projects),
		Breakdown:  RenderBreakdown(s.LateStay.Employees),
	}
}

func RenderStatCards(s *dashboard.Snapshot) dashboard.StatCards {
	women := s.WomenLateStay.Count
	if women == 0 {
		women = len(s.WomenLateStay.Employees)
	}
	return dashboard.StatCards{
		TotalPresent:         len(s.Attendance.Records),
		LateStayCount:        s.LateStayCount(),
		WomenLateStay:        women,
		WFOCompliance:        FormatPercent(s.Compliance.CompliancePercentage),
		CompliancePercentage: s.Compliance.CompliancePercentage,
		ComplianceStatus:     s.Compliance.StatusLabel(),
	}
}

// FormatPercent renders 85.5 as "85.5%" and 90 as "90%"
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

func RenderAttendanceTable(records []attendance.Record, q attendance.AttendanceQuery) dashboard.AttendanceTable {
	filtered := FilterAttendance(records, q)

	rows := make([]dashboard.AttendanceRow, 0, len(filtered))
	for _, r := range filtered {
		status := r.Status()
		rows = append(rows, dashboard.AttendanceRow{
			EmployeeID:   r.EmployeeID,
			Name:         orPlaceholder(r.Name),
			CheckinTime:  r.CheckinTime,
			CheckoutTime: r.CheckoutTime,
			TotalHours:   orPlaceholder(r.TotalHours),
			Status:       status,
			StatusLabel:  status.Label(),
			StatusClass:  status.Class(),
		})
	}

	table := dashboard.AttendanceTable{Rows: rows, Total: len(rows), Query: q}
	if len(rows) == 0 {
		table.EmptyMessage = dashboard.EmptyAttendanceMessage
	}
	return table
}

func RenderLateStayTable(employees []attendance.LateStayEmployee, q attendance.LateStayQuery) dashboard.LateStayTable {
	filtered := FilterLateStay(employees, q)

	rows := make([]dashboard.LateStayRow, 0, len(filtered))
	for _, e := range filtered {
		rows = append(rows, dashboard.LateStayRow{
			EmployeeID:   e.EmployeeID,
			Name:         orPlaceholder(e.Name),
			Gender:       e.Gender,
			CheckoutTime: e.CheckoutTime,
			ProjectID:    e.ProjectID,
			Office:       orPlaceholder(e.Office),
		})
	}

	table := dashboard.LateStayTable{Rows: rows, Total: len(rows), Query: q}
	if len(rows) == 0 {
		table.EmptyMessage = dashboard.EmptyLateStayMessage
	}
	return table
}

// RenderCharts builds the check-in/check-out bar chart over every record and
// the gender doughnut over the late-stay list.
func RenderCharts(s *dashboard.Snapshot) dashboard.Charts {
	records := s.Attendance.Records
	labels := make([]string, 0, len(records))
	checkins := make([]float64, 0, len(records))
	checkouts := make([]float64, 0, len(records))
	for _, r := range records {
		label := r.Name
		if strings.TrimSpace(label) == "" {
			label = r.EmployeeID
		}
		labels = append(labels, label)
		checkins = append(checkins, attendance.ClockHours(r.CheckinTime))
		checkouts = append(checkouts, attendance.ClockHours(r.CheckoutTime))
	}

	male, female := attendance.GenderCounts(s.LateStay.Employees)

	return dashboard.Charts{
		Attendance: dashboard.Chart{
			Type:   dashboard.ChartBar,
			Labels: labels,
			Datasets: []dashboard.Dataset{
				{
					Label:           checkinLabel,
					Data:            checkins,
					BackgroundColor: []string{checkinColor},
					BorderColor:     []string{checkinBorder},
					BorderWidth:     chartBorderWidth,
				},
				{
					Label:           checkoutLabel,
					Data:            checkouts,
					BackgroundColor: []string{checkoutColor},
					BorderColor:     []string{checkoutBorder},
					BorderWidth:     chartBorderWidth,
				},
			},
		},
		Gender: dashboard.Chart{
			Type:   dashboard.ChartDoughnut,
			Labels: []string{attendance.GenderMale, attendance.GenderFemale},
			Datasets: []dashboard.Dataset{
				{
					Data:            []float64{float64(male), float64(female)},
					BackgroundColor: []string{maleColor, femaleColor},
					BorderColor:     []string{maleBorder, femaleBorder},
					BorderWidth:     chartBorderWidth,
				},
			},
		},
	}
}

func RenderProjectCards(projects []report.ProjectReport) []dashboard.ProjectCard {
	cards := make([]dashboard.ProjectCard, 0, len(projects))
	for _, p := range projects {
		nightShift := nightShiftNo
		if p.RequiresNightShift {
			nightShift = nightShiftYes
		}
		ids := make([]string, 0, len(p.LateStayEmployees))
		for _, e := range p.LateStayEmployees {
			ids = append(ids, e.EmployeeID)
		}
		cards = append(cards, dashboard.ProjectCard{
			ProjectID:          p.ProjectID,
			ProjectName:        p.ProjectName,
			AverageWorkHours:   p.AverageWorkHours,
			LateNightFrequency: p.LateNightFrequency,
			TotalEmployees:     p.TotalEmployees,
			NightShiftRequired: nightShift,
			Recommendation:     p.Recommendation,
			LateStayCount:      p.LateStayCount,
			LateStayEmployees:  ids,
		})
	}
	return cards
}

func RenderBreakdown(employees []attendance.LateStayEmployee) dashboard.Breakdown {
	return dashboard.Breakdown{
		ByProject: attendance.ByProject(employees),
		ByOffice:  attendance.ByOffice(employees),
		ByGender:  attendance.ByGender(employees),
	}
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return dashboard.Placeholder
	}
	return s
}
