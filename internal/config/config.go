package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Upstream  UpstreamConfig
	Dashboard DashboardConfig
	CORS      CORSConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string
	Version  string
	Port     int
	Env      string
	LogLevel string
}

// UpstreamConfig points at the attendance / late-stay / reports REST API
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DashboardConfig holds view-model configuration
type DashboardConfig struct {
	ProjectIDs      []string
	RefreshInterval time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads the environment and validates the result
func Load() (*Config, error) {
	config, err := Read()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Read parses the environment without validating it, so callers can apply
// overrides before calling Validate.
func Read() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:     getEnv("APP_NAME", "attendance-latestay-copilot"),
		Version:  getEnv("APP_VERSION", "v1.0.0"),
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Upstream configuration
	upstreamTimeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}

	config.Upstream = UpstreamConfig{
		BaseURL: strings.TrimRight(getEnv("UPSTREAM_BASE_URL", "http://localhost:8000/api"), "/"),
		Timeout: upstreamTimeout,
	}

	// Dashboard configuration
	refreshInterval, err := time.ParseDuration(getEnv("DASHBOARD_REFRESH_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_REFRESH_INTERVAL: %w", err)
	}

	config.Dashboard = DashboardConfig{
		ProjectIDs:      getEnvSlice("DASHBOARD_PROJECT_IDS", "P101,P102"),
		RefreshInterval: refreshInterval,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}
	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL must be an absolute URL")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if c.Dashboard.RefreshInterval < 0 {
		return fmt.Errorf("DASHBOARD_REFRESH_INTERVAL must not be negative")
	}
	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
