// Command dashctl runs dashboard operations against the upstream API from a
// terminal, without starting the HTTP server.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/config"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/logger"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/repository/upstream"
	chatService "github.com/nareshdhoriwin/attendance-latestay-copilot/internal/service/chat"
	dashboardService "github.com/nareshdhoriwin/attendance-latestay-copilot/internal/service/dashboard"
	reportService "github.com/nareshdhoriwin/attendance-latestay-copilot/internal/service/report"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	upstreamURL string
	projectIDs  []string
	date        string
	timeout     time.Duration
	verbose     bool

	// Export flags
	exportFormat string
	exportOut    string

	appLogger *slog.Logger
)

// services bundles what a command needs; built once flags are parsed
type services struct {
	dashboard *dashboardService.DashboardServiceImpl
	report    *reportService.ReportServiceImpl
	chat      *chatService.ChatServiceImpl
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dashctl",
	Short: "Attendance and late-stay dashboard from the command line",
	Long: `dashctl loads one dashboard batch from the upstream attendance API and
prints stats, answers chat questions or writes the CSV / XLSX report.

Defaults come from the same environment (.env) as the API server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		appLogger = logger.New(cmd.ErrOrStderr(), logger.Options{App: "dashctl", Env: "cli", Level: level, Concise: true})
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the stat cards of a day",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the attendance report to a file",
	Example: `  dashctl export --format xlsx --date 2025-11-20
  dashctl export --out - > report.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the dashboard chat a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the questions the chat understands",
	Args:  cobra.NoArgs,
	RunE:  runQuestions,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&upstreamURL, "upstream", "", "Upstream API base URL (default: UPSTREAM_BASE_URL)")
	rootCmd.PersistentFlags().StringSliceVar(&projectIDs, "projects", nil, "Project IDs to load (default: DASHBOARD_PROJECT_IDS)")
	rootCmd.PersistentFlags().StringVarP(&date, "date", "d", "", "Day to load as YYYY-MM-DD (default: today)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Report format: csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file, - for stdout (default: attendance_report_<date>.<format>)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(questionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newServices wires the dashboard stack from config, with flags taking precedence
func newServices(cmd *cobra.Command) (*services, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("upstream") {
		cfg.Upstream.BaseURL = upstreamURL
	}
	if cmd.Flags().Changed("projects") {
		cfg.Dashboard.ProjectIDs = projectIDs
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	dashboardSvc := dashboardService.NewDashboardService(upstream.NewDashboardSource(client), dashboardService.Options{
		ProjectIDs: cfg.Dashboard.ProjectIDs,
		Logger:     appLogger,
	})
	chatSvc, err := chatService.NewChatService(dashboardSvc, nil, appLogger)
	if err != nil {
		return nil, err
	}

	return &services{
		dashboard: dashboardSvc,
		report:    reportService.NewReportService(dashboardSvc, appLogger),
		chat:      chatSvc,
	}, nil
}
