package dashboard

import (
	"context"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
)

// DashboardService defines the dashboard view-model operations
type DashboardService interface {
	// Refresh fetches a complete batch in parallel and publishes it as the current snapshot
	Refresh(ctx context.Context, date string) (*Snapshot, error)

	// Load returns the current snapshot for date, refreshing when it is missing or for another date
	Load(ctx context.Context, date string) (*Snapshot, error)

	// Current returns the current snapshot without touching the upstream
	Current() (*Snapshot, error)

	// View renders the full dashboard for date
	View(ctx context.Context, date string, q ViewQuery) (*View, error)

	// The partial views below work on the snapshot of date, loaded like View does.

	// AttendanceTable filters and sorts the attendance records of date
	AttendanceTable(ctx context.Context, date string, q attendance.AttendanceQuery) (*AttendanceTable, error)

	// LateStayTable filters and sorts the late-stay list of date
	LateStayTable(ctx context.Context, date string, q attendance.LateStayQuery) (*LateStayTable, error)

	// Charts returns chart datasets of date
	Charts(ctx context.Context, date string) (*Charts, error)

	// ProjectCards returns the enriched project work-balance cards of date
	ProjectCards(ctx context.Context, date string) ([]ProjectCard, error)

	// Breakdown returns late-stay aggregates by project, office and gender
	Breakdown(ctx context.Context, date string) (*Breakdown, error)
}
