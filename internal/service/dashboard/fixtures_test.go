package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/report"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/sse"
)

var errUpstreamDown = errors.New("connection refused")

func sampleRecords() []attendance.Record {
	return []attendance.Record{
		{EmployeeID: "E001", Name: "Asha Rao", Gender: "Female", ProjectID: "P101", CheckinTime: "08:55", CheckoutTime: "20:15", TotalHours: "11h 20m", Office: "Bengaluru"},
		{EmployeeID: "E002", Name: "Ravi Kumar", Gender: "Male", ProjectID: "P102", CheckinTime: "09:10", CheckoutTime: "18:00", TotalHours: "8h 50m"},
		{EmployeeID: "E003", Name: "Kiran", Gender: "Male", ProjectID: "P101", CheckinTime: "08:30", CheckoutTime: "21:40", TotalHours: "13h 10m", Office: "Pune"},
		{EmployeeID: "E004", Gender: "Female", ProjectID: "P102", CheckinTime: "09:00", CheckoutTime: "17:30"},
		{EmployeeID: "E005", Name: "Meera", Gender: "Female", ProjectID: "P102", CheckinTime: "09:45", CheckoutTime: "18:45", TotalHours: "9h 0m"},
	}
}

func sampleLateStay() []attendance.LateStayEmployee {
	return []attendance.LateStayEmployee{
		{EmployeeID: "E001", Name: "Asha Rao", Gender: "Female", CheckoutTime: "20:15", ProjectID: "P101", Office: "Bengaluru"},
		{EmployeeID: "E003", Name: "Kiran", Gender: "Male", CheckoutTime: "21:40", ProjectID: "P101", Office: "Pune"},
	}
}

// fakeSource serves canned data and counts calls. Setting fail makes every
// call for that path fail.
type fakeSource struct {
	mu    sync.Mutex
	fail  map[string]bool
	delay time.Duration
	calls atomic.Int32
	dates []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{fail: make(map[string]bool)}
}

func (f *fakeSource) setFail(path string, fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[path] = fail
}

func (f *fakeSource) enter(ctx context.Context, path, date string) error {
	f.calls.Add(1)
	f.mu.Lock()
	f.dates = append(f.dates, date)
	fail := f.fail[path]
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if fail {
		return errUpstreamDown
	}
	return nil
}

func (f *fakeSource) GetAttendanceRecords(ctx context.Context, date string) (*attendance.Day, error) {
	if err := f.enter(ctx, "records", date); err != nil {
		return nil, err
	}
	return &attendance.Day{Date: date, Records: sampleRecords()}, nil
}

func (f *fakeSource) GetLateStay(ctx context.Context, date string) (*attendance.LateStayList, error) {
	if err := f.enter(ctx, "late-stay", date); err != nil {
		return nil, err
	}
	return &attendance.LateStayList{Date: date, Employees: sampleLateStay(), TotalCount: 2, FemaleCount: 1}, nil
}

func (f *fakeSource) GetWomenLateStay(ctx context.Context, date string) (*attendance.WomenLateStayList, error) {
	if err := f.enter(ctx, "women", date); err != nil {
		return nil, err
	}
	return &attendance.WomenLateStayList{Date: date, Employees: sampleLateStay()[:1], Count: 1}, nil
}

func (f *fakeSource) GetCompliance(ctx context.Context, date string) (*report.ComplianceSummary, error) {
	if err := f.enter(ctx, "compliance", date); err != nil {
		return nil, err
	}
	return &report.ComplianceSummary{
		Date:                    date,
		TotalEmployees:          6,
		PresentEmployees:        5,
		AbsentEmployees:         1,
		CompliancePercentage:    85.5,
		WFOCompliancePercentage: 60,
		WFHCompliancePercentage: 25.5,
	}, nil
}

func (f *fakeSource) GetProjectWorkBalance(ctx context.Context, projectID string, date string) (*report.ProjectReport, error) {
	if err := f.enter(ctx, "project/"+projectID, date); err != nil {
		return nil, err
	}
	return &report.ProjectReport{
		ProjectID:          projectID,
		ProjectName:        "Project " + projectID,
		AverageWorkHours:   "10h 5m",
		TotalEmployees:     3,
		LateNightFrequency: report.FrequencyHigh,
		RequiresNightShift: projectID == "P101",
		Recommendation:     "Rotate late shifts",
	}, nil
}

// recordingPublisher collects published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []sse.Event
}

func (p *recordingPublisher) Publish(topic string, event sse.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	event.Topic = topic
	p.events = append(p.events, event)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.Event)
	}
	return names
}

func fixedClock() time.Time {
	return time.Date(2025, 11, 20, 10, 30, 0, 0, time.UTC)
}
