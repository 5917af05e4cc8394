package http

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/chat"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDashboard_FullView(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/v1/dashboard?date="+testDate+"&status=late-stay&sort_by=checkout_time&order=desc", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[dashboard.View](t, rec)
	assert.True(t, body.Success)
	view := body.Data
	assert.Equal(t, testDate, view.Date)
	assert.NotEmpty(t, view.SnapshotID)
	assert.Equal(t, 3, view.Stats.TotalPresent)
	assert.Equal(t, 2, view.Stats.LateStayCount)
	assert.Equal(t, 1, view.Stats.WomenLateStay)
	assert.Equal(t, "85.5%", view.Stats.WFOCompliance)

	require.Len(t, view.Attendance.Rows, 2)
	assert.Equal(t, "E003", view.Attendance.Rows[0].EmployeeID)
	assert.Equal(t, "E001", view.Attendance.Rows[1].EmployeeID)
	require.Len(t, view.Projects, 1)
	assert.Equal(t, "Atlas", view.Projects[0].ProjectName)
}

func TestDashboard_InvalidQueryIsRejected(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		target string
		field  string
	}{
		{"bad date", "/api/v1/dashboard?date=20-11-2025", "date"},
		{"unknown status", "/api/v1/dashboard?status=sleeping", "status"},
		{"unknown sort key", "/api/v1/dashboard?sort_by=salary", "sort_by"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

			body := decode[any](t, rec)
			require.NotNil(t, body.Error)
			assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
			assert.Contains(t, body.Error.Details, tt.field)
		})
	}
}

func TestDashboard_Refresh(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/v1/dashboard/refresh?date="+testDate, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	refreshed := decode[dashboard.RefreshEvent](t, rec)
	assert.Equal(t, "Dashboard refreshed", refreshed.Message)
	assert.Equal(t, testDate, refreshed.Data.Date)

	for _, path := range []string{"attendance", "late-stay", "charts", "projects", "breakdown"} {
		rec := app.do(t, http.MethodGet, "/api/v1/dashboard/"+path+"?date="+testDate, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestDashboard_PartialViewsFollowRequestedDate(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/v1/dashboard?date=2025-11-19", "")
	require.Equal(t, http.StatusOK, rec.Code)
	// the cron job or another client moves the shared snapshot on
	rec = app.do(t, http.MethodPost, "/api/v1/dashboard/refresh?date="+testDate, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/dashboard/attendance?date=2025-11-19&status=late-stay", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	table := decode[dashboard.AttendanceTable](t, rec).Data
	assert.Equal(t, "2025-11-19", table.Date)
	assert.NotEmpty(t, table.SnapshotID)
	assert.Len(t, table.Rows, 2)

	rec = app.do(t, http.MethodGet, "/api/v1/dashboard/charts?date=2025-11-19", "")
	require.Equal(t, http.StatusOK, rec.Code)
	charts := decode[dashboard.Charts](t, rec).Data
	assert.Equal(t, "2025-11-19", charts.Date)
	assert.Equal(t, table.SnapshotID, charts.SnapshotID)

	app.source.failing.Store(true)
	rec = app.do(t, http.MethodGet, "/api/v1/dashboard/breakdown?date=2025-11-18", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestDashboard_LateStayFilters(t *testing.T) {
	app := newTestApp(t)
	_, err := app.dashboard.Refresh(context.Background(), testDate)
	require.NoError(t, err)

	rec := app.do(t, http.MethodGet, "/api/v1/dashboard/late-stay?gender=female", "")
	require.Equal(t, http.StatusOK, rec.Code)

	table := decode[dashboard.LateStayTable](t, rec).Data
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "E001", table.Rows[0].EmployeeID)

	rec = app.do(t, http.MethodGet, "/api/v1/dashboard/late-stay?search=nobody", "")
	require.Equal(t, http.StatusOK, rec.Code)
	table = decode[dashboard.LateStayTable](t, rec).Data
	assert.Empty(t, table.Rows)
	assert.Equal(t, dashboard.EmptyLateStayMessage, table.EmptyMessage)
}

func TestDashboard_RefreshFailureIsBadGateway(t *testing.T) {
	app := newTestApp(t)
	app.source.failing.Store(true)

	rec := app.do(t, http.MethodPost, "/api/v1/dashboard/refresh", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	body := decode[any](t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, dashboard.RefreshFailedMessage, body.Error.Message)
}

func TestEmployeeLookups(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/v1/employees/E001/summary?date="+testDate, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	summary := decode[attendance.EmployeeSummaryResponse](t, rec).Data
	assert.Equal(t, attendance.StatusLateStay, summary.Status)
	assert.Equal(t, "Late Stay", summary.StatusLabel)

	rec = app.do(t, http.MethodGet, "/api/v1/employees/E001/wellbeing", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"recommendations":[]`)

	rec = app.do(t, http.MethodGet, "/api/v1/employees/E999/summary", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/employees/E001/summary?date=tomorrow", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/attendance/daily-count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	count := decode[attendance.DailyCount](t, rec).Data
	assert.Equal(t, 3, count.TotalPeople)
	assert.NotNil(t, count.CountByOffice)
}

func TestReport_Export(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/v1/reports/export?format=csv&date="+testDate, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename="attendance_report_2025-11-20.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Snapshot-ID"))
	assert.Contains(t, rec.Body.String(), "Asha Rao")

	rec = app.do(t, http.MethodGet, "/api/v1/reports/export?format=xlsx&date="+testDate, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="attendance_report_2025-11-20.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"), "xlsx is a zip archive")

	rec = app.do(t, http.MethodGet, "/api/v1/reports/export?format=pdf", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

func TestReport_ExportFailureWritesNoFile(t *testing.T) {
	app := newTestApp(t)
	app.source.failing.Store(true)

	rec := app.do(t, http.MethodGet, "/api/v1/reports/export?format=csv", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

func TestChat_Ask(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/v1/chat/ask", `{"question":"How many employees are present today?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	answer := decode[chat.Answer](t, rec).Data
	assert.Equal(t, chat.IntentNotLoaded, answer.Intent)

	_, err := app.dashboard.Refresh(context.Background(), testDate)
	require.NoError(t, err)

	rec = app.do(t, http.MethodPost, "/api/v1/chat/ask", `{"question":"How many employees are present today?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	answer = decode[chat.Answer](t, rec).Data
	assert.Equal(t, "present_count", answer.Intent)
	assert.Equal(t, "3 of 4 employees are present on 2025-11-20.", answer.Answer)

	rec = app.do(t, http.MethodPost, "/api/v1/chat/ask", `{"question":"   "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/v1/chat/ask", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_Questions(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/v1/chat/questions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	questions := decode[[]questionResponse](t, rec).Data
	require.NotEmpty(t, questions)
	assert.Equal(t, chat.IntentHelp, questions[0].ID)
}

func TestChat_WebSocket(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/chat/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("help")))
	var answer chat.Answer
	require.NoError(t, conn.ReadJSON(&answer))
	assert.Equal(t, chat.IntentHelp, answer.Intent)
	assert.NotEmpty(t, answer.Suggestions)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("  ")))
	var rejected wsError
	require.NoError(t, conn.ReadJSON(&rejected))
	assert.Equal(t, "Validation failed", rejected.Error)
	assert.Equal(t, "question is required", rejected.Details["question"])
}

func TestChat_WebSocketRejectsForeignOrigin(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/chat/ws"
	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestEvents_StreamsRefresh(t *testing.T) {
	app := newTestApp(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv := httptest.NewServer(app.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	waitFor := func(prefix string) string {
		t.Helper()
		for lines.Scan() {
			if strings.HasPrefix(lines.Text(), prefix) {
				return lines.Text()
			}
		}
		t.Fatalf("stream ended before %q: %v", prefix, lines.Err())
		return ""
	}

	waitFor("event: connected")
	_, err = app.dashboard.Refresh(context.Background(), testDate)
	require.NoError(t, err)

	assert.Equal(t, "event: "+dashboard.EventRefreshed, waitFor("event: "+dashboard.EventRefreshed))
	assert.Contains(t, waitFor("data: "), `"date":"2025-11-20"`)
	waitFor("event: ping")

	cancel()
	resp.Body.Close()
	srv.CloseClientConnections()
	assert.Eventually(t, func() bool { return app.hub.SubscriberCount(dashboard.Topic) == 0 }, time.Second, 10*time.Millisecond)
}

func TestEvents_EndWithServerContext(t *testing.T) {
	app := newTestApp(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	serverCtx, stopServer := context.WithCancel(context.Background())
	defer stopServer()
	srv := httptest.NewUnstartedServer(app.router)
	srv.Config.BaseContext = func(net.Listener) context.Context { return serverCtx }
	srv.Start()
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/api/v1/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: connected", lines.Text())

	stopServer()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for lines.Scan() {
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event stream still open after the server context ended")
	}
	assert.Eventually(t, func() bool { return app.hub.SubscriberCount(dashboard.Topic) == 0 }, time.Second, 10*time.Millisecond)
}

func TestPage_Dashboard(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/?date="+testDate, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	html := rec.Body.String()
	assert.Contains(t, html, "Attendance &amp; Late Stay")
	assert.Contains(t, html, "Asha Rao")
	assert.Contains(t, html, "85.5%")
	assert.NotContains(t, html, `role="alert"`)
}

func TestPage_ShowsToastWhenUpstreamIsDown(t *testing.T) {
	app := newTestApp(t)
	app.source.failing.Store(true)

	rec := app.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), dashboard.RefreshFailedMessage)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[healthResponse](t, rec).Data
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "ok", body.Upstream)
}
