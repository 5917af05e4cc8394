package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/report"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/sse"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/repository/upstream"
	attendanceService "github.com/nareshdhoriwin/attendance-latestay-copilot/internal/service/attendance"
	chatService "github.com/nareshdhoriwin/attendance-latestay-copilot/internal/service/chat"
	dashboardService "github.com/nareshdhoriwin/attendance-latestay-copilot/internal/service/dashboard"
	reportService "github.com/nareshdhoriwin/attendance-latestay-copilot/internal/service/report"
	"github.com/stretchr/testify/require"
)

const testDate = "2025-11-20"

// stubSource serves a fixed batch; failing makes every call return an error
type stubSource struct {
	failing atomic.Bool
}

var errConnRefused = errors.New("dial tcp: connection refused")

func (s *stubSource) GetAttendanceRecords(ctx context.Context, date string) (*attendance.Day, error) {
	if s.failing.Load() {
		return nil, errConnRefused
	}
	return &attendance.Day{Date: date, Records: []attendance.Record{
		{EmployeeID: "E001", Name: "Asha Rao", Gender: "Female", ProjectID: "P101", CheckinTime: "08:55", CheckoutTime: "20:15", TotalHours: "11h 20m", Office: "Bengaluru"},
		{EmployeeID: "E002", Name: "Ravi Kumar", Gender: "Male", ProjectID: "P102", CheckinTime: "09:10", CheckoutTime: "18:00", TotalHours: "8h 50m"},
		{EmployeeID: "E003", Name: "Kiran", Gender: "Male", ProjectID: "P101", CheckinTime: "08:30", CheckoutTime: "21:40", TotalHours: "13h 10m", Office: "Pune"},
	}}, nil
}

func (s *stubSource) GetLateStay(ctx context.Context, date string) (*attendance.LateStayList, error) {
	if s.failing.Load() {
		return nil, errConnRefused
	}
	return &attendance.LateStayList{Date: date, Employees: lateStayers(), TotalCount: 2, FemaleCount: 1}, nil
}

func (s *stubSource) GetWomenLateStay(ctx context.Context, date string) (*attendance.WomenLateStayList, error) {
	if s.failing.Load() {
		return nil, errConnRefused
	}
	return &attendance.WomenLateStayList{Date: date, Employees: lateStayers()[:1], Count: 1}, nil
}

func (s *stubSource) GetCompliance(ctx context.Context, date string) (*report.ComplianceSummary, error) {
	if s.failing.Load() {
		return nil, errConnRefused
	}
	return &report.ComplianceSummary{
		Date: date, TotalEmployees: 4, PresentEmployees: 3, AbsentEmployees: 1,
		CompliancePercentage: 85.5, WFOCompliancePercentage: 66.67, Status: "Compliant",
	}, nil
}

func (s *stubSource) GetProjectWorkBalance(ctx context.Context, projectID string, date string) (*report.ProjectReport, error) {
	if s.failing.Load() {
		return nil, errConnRefused
	}
	return &report.ProjectReport{
		ProjectID: projectID, ProjectName: "Atlas", AverageWorkHours: "10h 30m", TotalEmployees: 2,
		LateNightFrequency: "High", LateNightCount: 2, RequiresNightShift: true,
		Recommendation: "Introduce shift rotation", Date: date,
	}, nil
}

func lateStayers() []attendance.LateStayEmployee {
	return []attendance.LateStayEmployee{
		{EmployeeID: "E001", Name: "Asha Rao", Gender: "Female", CheckoutTime: "20:15", ProjectID: "P101", Office: "Bengaluru"},
		{EmployeeID: "E003", Name: "Kiran", Gender: "Male", CheckoutTime: "21:40", ProjectID: "P101", Office: "Pune"},
	}
}

// testApp is the full router wired to real services over stubbed upstreams
type testApp struct {
	router    http.Handler
	source    *stubSource
	hub       *sse.Hub
	dashboard *dashboardService.DashboardServiceImpl
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// per-employee lookups go through the real upstream client
	upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/health":
			_, _ = w.Write([]byte(`{"status":"healthy"}`))
		case r.URL.Path == "/api/attendance/summary" && r.URL.Query().Get("employee_id") == "E001":
			_, _ = w.Write([]byte(`{"employee_id":"E001","name":"Asha Rao","checkin":"08:55","checkout":"20:15","total_hours":"11h 20m"}`))
		case r.URL.Path == "/api/reports/wellbeing-recommendations" && r.URL.Query().Get("employee_id") == "E001":
			_, _ = w.Write([]byte(`{"employee_id":"E001","recommendations":null}`))
		case r.URL.Path == "/api/attendance/daily-count":
			_, _ = w.Write([]byte(`{"date":"2025-11-20","total_people":3}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Employee not found"}`))
		}
	}))
	t.Cleanup(upstreamSrv.Close)
	client := upstream.NewClient(upstreamSrv.URL+"/api", 2*time.Second)

	source := &stubSource{}
	hub := sse.NewHub(8)
	dashSvc := dashboardService.NewDashboardService(source, dashboardService.Options{
		ProjectIDs: []string{"P101"},
		Publisher:  hub,
		Logger:     logger,
		Now:        func() time.Time { return time.Date(2025, 11, 20, 10, 30, 0, 0, time.UTC) },
	})
	chatSvc, err := chatService.NewChatService(dashSvc, nil, logger)
	require.NoError(t, err)

	router := NewRouter(logger, []string{"http://localhost:3000"}, Handlers{
		Page:       NewPageHandler(dashSvc, "Attendance & Late Stay", logger),
		Health:     NewHealthHandler("attendance-latestay-copilot", client),
		Dashboard:  NewDashboardHandler(dashSvc),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(upstream.NewAttendanceRepository(client))),
		Report:     NewReportHandler(reportService.NewReportService(dashSvc, logger)),
		Chat:       NewChatHandler(chatSvc, []string{"http://localhost:3000"}, logger),
		Events:     NewEventsHandler(hub, 50*time.Millisecond),
	})

	return &testApp{router: router, source: source, hub: hub, dashboard: dashSvc}
}

func (a *testApp) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors response.Response with a typed payload
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
