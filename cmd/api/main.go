package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/config"
	appHTTP "github.com/nareshdhoriwin/attendance-latestay-copilot/internal/handler/http"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/cron"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/logger"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/sse"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/repository/upstream"
	attendanceService "github.com/nareshdhoriwin/attendance-latestay-copilot/internal/service/attendance"
	chatService "github.com/nareshdhoriwin/attendance-latestay-copilot/internal/service/chat"
	dashboardService "github.com/nareshdhoriwin/attendance-latestay-copilot/internal/service/dashboard"
	reportService "github.com/nareshdhoriwin/attendance-latestay-copilot/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	appLogger := logger.New(os.Stdout, logger.Options{
		App:     cfg.App.Name,
		Version: cfg.App.Version,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Concise: !cfg.IsProduction(),
	})
	slog.SetDefault(appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	dashboardSource := upstream.NewDashboardSource(client)
	attendanceRepo := upstream.NewAttendanceRepository(client)

	hub := sse.NewHub(16)

	dashboardSvc := dashboardService.NewDashboardService(dashboardSource, dashboardService.Options{
		ProjectIDs: cfg.Dashboard.ProjectIDs,
		Publisher:  hub,
		Logger:     appLogger,
	})
	reportSvc := reportService.NewReportService(dashboardSvc, appLogger)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	chatSvc, err := chatService.NewChatService(dashboardSvc, nil, appLogger)
	if err != nil {
		log.Fatal("Failed to initialize chat service: ", err)
	}

	scheduler := cron.NewScheduler(appLogger)
	if cfg.Dashboard.RefreshInterval > 0 {
		cron.NewDashboardJobs(dashboardSvc).RegisterJobs(scheduler, cfg.Dashboard.RefreshInterval)
		scheduler.Start(ctx)
	}
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appLogger, cfg.CORS.AllowedOrigins, appHTTP.Handlers{
		Page:       appHTTP.NewPageHandler(dashboardSvc, "Attendance & Late Stay Dashboard", appLogger),
		Health:     appHTTP.NewHealthHandler(cfg.App.Name, client),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Chat:       appHTTP.NewChatHandler(chatSvc, cfg.CORS.AllowedOrigins, appLogger),
		Events:     appHTTP.NewEventsHandler(hub, 30*time.Second),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// request contexts end with the signal context so event streams close on shutdown
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		appLogger.Info("Server running", "addr", fmt.Sprintf("http://localhost%s", server.Addr), "upstream", cfg.Upstream.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", "error", err)
	}
}
