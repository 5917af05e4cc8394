package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/report"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/sse"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const dateLayout = "2006-01-02"

// Publisher receives refresh events. *sse.Hub satisfies it.
type Publisher interface {
	Publish(topic string, event sse.Event)
}

type Options struct {
	// ProjectIDs are fetched one work-balance report each on every refresh
	ProjectIDs []string
	Publisher  Publisher
	Logger     *slog.Logger
	// Now defaults to time.Now
	Now func() time.Time
}

var _ dashboard.DashboardService = (*DashboardServiceImpl)(nil)

type DashboardServiceImpl struct {
	source     dashboard.Source
	projectIDs []string
	publisher  Publisher
	logger     *slog.Logger
	now        func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	snapshot *dashboard.Snapshot
}

func NewDashboardService(source dashboard.Source, opts Options) *DashboardServiceImpl {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &DashboardServiceImpl{
		source:     source,
		projectIDs: append([]string{}, opts.ProjectIDs...),
		publisher:  opts.Publisher,
		logger:     opts.Logger,
		now:        opts.Now,
	}
}

// resolveDate validates date, defaulting to today
func (s *DashboardServiceImpl) resolveDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return s.now().Format(dateLayout), nil
	}
	if _, ok := validator.IsValidDate(date); !ok {
		return "", validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return date, nil
}

// Refresh fetches the whole batch in parallel. Either every call succeeds and
// the snapshot is replaced, or the previous snapshot stays in place.
func (s *DashboardServiceImpl) Refresh(ctx context.Context, date string) (*dashboard.Snapshot, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	// The fetch is shared by every caller of date, so it must outlive the
	// caller that started it. Each upstream call is bounded by the client timeout.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(date, func() (interface{}, error) {
		return s.fetch(fetchCtx, date)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug("dashboard refresh shared", "date", date)
		}
		return res.Val.(*dashboard.Snapshot), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *DashboardServiceImpl) fetch(ctx context.Context, date string) (*dashboard.Snapshot, error) {
	start := s.now()

	var (
		day      *attendance.Day
		lateStay *attendance.LateStayList
		women    *attendance.WomenLateStayList
		summary  *report.ComplianceSummary
		projects = make([]report.ProjectReport, len(s.projectIDs))
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		day, err = s.source.GetAttendanceRecords(gCtx, date)
		if err != nil {
			return fmt.Errorf("attendance records: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		lateStay, err = s.source.GetLateStay(gCtx, date)
		if err != nil {
			return fmt.Errorf("late stay: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		women, err = s.source.GetWomenLateStay(gCtx, date)
		if err != nil {
			return fmt.Errorf("women late stay: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		summary, err = s.source.GetCompliance(gCtx, date)
		if err != nil {
			return fmt.Errorf("compliance: %w", err)
		}
		return nil
	})

	for i, projectID := range s.projectIDs {
		g.Go(func() error {
			project, err := s.source.GetProjectWorkBalance(gCtx, projectID, date)
			if err != nil {
				return fmt.Errorf("project %s: %w", projectID, err)
			}
			projects[i] = *project
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Warn("dashboard refresh canceled", "date", date, "error", err)
			return nil, fmt.Errorf("%w: %v", dashboard.ErrRefreshFailed, err)
		}
		s.logger.Error("dashboard refresh failed", "date", date, "error", err)
		s.publish(dashboard.EventError, dashboard.ErrorEvent{
			Date:    date,
			Message: dashboard.RefreshFailedMessage,
		})
		return nil, fmt.Errorf("%w: %v", dashboard.ErrRefreshFailed, err)
	}

	snapshot := &dashboard.Snapshot{
		ID:            uuid.New().String(),
		Date:          date,
		FetchedAt:     s.now(),
		Attendance:    *day,
		LateStay:      *lateStay,
		WomenLateStay: *women,
		Compliance:    *summary,
		Projects:      report.Enrich(projects, lateStay.Employees),
	}
	snapshot.Attendance.Date = date

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.logger.Info("dashboard refreshed",
		"snapshot_id", snapshot.ID,
		"date", date,
		"records", len(snapshot.Attendance.Records),
		"late_stay", snapshot.LateStayCount(),
		"projects", len(snapshot.Projects),
		"duration", s.now().Sub(start),
	)
	s.publish(dashboard.EventRefreshed, dashboard.RefreshEvent{
		SnapshotID: snapshot.ID,
		Date:       snapshot.Date,
		FetchedAt:  snapshot.FetchedAt,
	})
	return snapshot, nil
}

func (s *DashboardServiceImpl) publish(name string, data interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(dashboard.Topic, sse.Event{Event: name, Data: data})
}

// Load returns the cached snapshot when it is for date, otherwise refreshes
func (s *DashboardServiceImpl) Load(ctx context.Context, date string) (*dashboard.Snapshot, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	current := s.snapshot
	s.mu.RUnlock()

	if current != nil && current.Date == date {
		return current, nil
	}
	return s.Refresh(ctx, date)
}

func (s *DashboardServiceImpl) Current() (*dashboard.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, dashboard.ErrNoSnapshot
	}
	return s.snapshot, nil
}

func (s *DashboardServiceImpl) View(ctx context.Context, date string, q dashboard.ViewQuery) (*dashboard.View, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	snapshot, err := s.Load(ctx, date)
	if err != nil {
		return nil, err
	}
	return Render(snapshot, q), nil
}

func (s *DashboardServiceImpl) AttendanceTable(ctx context.Context, date string, q attendance.AttendanceQuery) (*dashboard.AttendanceTable, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	snapshot, err := s.Load(ctx, date)
	if err != nil {
		return nil, err
	}
	table := RenderAttendanceTable(snapshot.Attendance.Records, q)
	table.SnapshotID, table.Date = snapshot.ID, snapshot.Date
	return &table, nil
}

func (s *DashboardServiceImpl) LateStayTable(ctx context.Context, date string, q attendance.LateStayQuery) (*dashboard.LateStayTable, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	snapshot, err := s.Load(ctx, date)
	if err != nil {
		return nil, err
	}
	table := RenderLateStayTable(snapshot.LateStay.Employees, q)
	table.SnapshotID, table.Date = snapshot.ID, snapshot.Date
	return &table, nil
}

func (s *DashboardServiceImpl) Charts(ctx context.Context, date string) (*dashboard.Charts, error) {
	snapshot, err := s.Load(ctx, date)
	if err != nil {
		return nil, err
	}
	charts := RenderCharts(snapshot)
	charts.SnapshotID, charts.Date = snapshot.ID, snapshot.Date
	return &charts, nil
}

func (s *DashboardServiceImpl) ProjectCards(ctx context.Context, date string) ([]dashboard.ProjectCard, error) {
	snapshot, err := s.Load(ctx, date)
	if err != nil {
		return nil, err
	}
	return RenderProjectCards(snapshot.Projects), nil
}

func (s *DashboardServiceImpl) Breakdown(ctx context.Context, date string) (*dashboard.Breakdown, error) {
	snapshot, err := s.Load(ctx, date)
	if err != nil {
		return nil, err
	}
	breakdown := RenderBreakdown(snapshot.LateStay.Employees)
	breakdown.SnapshotID, breakdown.Date = snapshot.ID, snapshot.Date
	return &breakdown, nil
}
