package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
)

// DashboardJobs keeps the cached dashboard snapshot fresh
type DashboardJobs struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardJobs(dashboardService dashboard.DashboardService) *DashboardJobs {
	return &DashboardJobs{dashboardService: dashboardService}
}

// RegisterJobs registers the refresh job. A zero interval disables it.
func (j *DashboardJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("dashboard_refresh", interval, j.RefreshDashboard)
}

// RefreshDashboard reloads today's batch from the upstream API
func (j *DashboardJobs) RefreshDashboard(ctx context.Context) error {
	if _, err := j.dashboardService.Refresh(ctx, ""); err != nil {
		return fmt.Errorf("failed to refresh dashboard: %w", err)
	}
	return nil
}
