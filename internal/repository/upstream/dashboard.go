package upstream

import (
	"context"
	"net/url"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/report"
)

type dashboardSource struct {
	*Client
}

// NewDashboardSource returns the dashboard batch reads backed by c
func NewDashboardSource(c *Client) dashboard.Source {
	return &dashboardSource{Client: c}
}

func (s *dashboardSource) GetAttendanceRecords(ctx context.Context, date string) (*attendance.Day, error) {
	var day attendance.Day
	if err := s.getJSON(ctx, "/attendance/records", map[string]string{"date": date}, &day); err != nil {
		return nil, err
	}
	if day.Date == "" {
		day.Date = date
	}
	return &day, nil
}

func (s *dashboardSource) GetLateStay(ctx context.Context, date string) (*attendance.LateStayList, error) {
	var list attendance.LateStayList
	if err := s.getJSON(ctx, "/late-stay/after-8pm", map[string]string{"date": date}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *dashboardSource) GetWomenLateStay(ctx context.Context, date string) (*attendance.WomenLateStayList, error) {
	var list attendance.WomenLateStayList
	if err := s.getJSON(ctx, "/late-stay/women-after-8pm", map[string]string{"date": date}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *dashboardSource) GetCompliance(ctx context.Context, date string) (*report.ComplianceSummary, error) {
	var summary report.ComplianceSummary
	if err := s.getJSON(ctx, "/reports/wfo-compliance", map[string]string{"date": date}, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *dashboardSource) GetProjectWorkBalance(ctx context.Context, projectID string, date string) (*report.ProjectReport, error) {
	var project report.ProjectReport
	path := "/reports/work-balance/project/" + url.PathEscape(projectID)
	if err := s.getJSON(ctx, path, map[string]string{"date": date}, &project); err != nil {
		return nil, err
	}
	return &project, nil
}
