package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// Handlers groups every handler mounted by NewRouter
type Handlers struct {
	Page       PageHandler
	Health     HealthHandler
	Dashboard  DashboardHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Chat       ChatHandler
	Events     EventsHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Snapshot-ID"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	r.Get("/", h.Page.Dashboard)
	r.Get("/health", h.Health.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", h.Dashboard.GetDashboard)
			r.Post("/refresh", h.Dashboard.Refresh)
			r.Get("/attendance", h.Dashboard.GetAttendance)
			r.Get("/late-stay", h.Dashboard.GetLateStay)
			r.Get("/charts", h.Dashboard.GetCharts)
			r.Get("/projects", h.Dashboard.GetProjects)
			r.Get("/breakdown", h.Dashboard.GetBreakdown)
		})

		r.Route("/employees/{employeeID}", func(r chi.Router) {
			r.Get("/summary", h.Attendance.GetEmployeeSummary)
			r.Get("/wellbeing", h.Attendance.GetWellbeing)
		})
		r.Get("/attendance/daily-count", h.Attendance.GetDailyCount)

		r.Get("/reports/export", h.Report.Export)

		r.Route("/chat", func(r chi.Router) {
			r.Get("/questions", h.Chat.Questions)
			r.Post("/ask", h.Chat.Ask)
			r.Get("/ws", h.Chat.WebSocket)
		})

		r.Get("/events", h.Events.Stream)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "404 page not found", http.StatusNotFound)
	})
	return r
}
