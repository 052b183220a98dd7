package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avezquez/matchscout/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	ServiceName  string
	HTTPAddr     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DBPath       string
	LogLevel     logging.Level

	SourceBaseURL string

	DirectFetchTimeout time.Duration

	SolverURL                string
	SolverProbeTimeout       time.Duration
	SolverTimeout            time.Duration
	SolverMaxTimeoutMS       int
	SolverCircuitEnabled     bool
	SolverCircuitFailures    int
	SolverCircuitOpenTimeout time.Duration
	SolverCircuitHalfOpenMax int

	BrowserPollInterval time.Duration
	BrowserPollAttempts int
	BrowserDumpPath     string
	BrowserUserAgent    string

	CrawlSeasons   []string
	CrawlDelayMin  time.Duration
	CrawlDelayMax  time.Duration
	FixtureHorizon int
	ReportMarker   string
}

func Load() (Config, error) {
	cfg := Config{
		ServiceName:   getEnv("SERVICE_NAME", "matchscout"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		DBPath:        getEnv("DB_PATH", "sports_data.db"),
		SourceBaseURL: getEnv("SOURCE_BASE_URL", "https://fbref.com"),
		SolverURL:     getEnv("SOLVER_URL", "http://127.0.0.1:8191"),

		BrowserDumpPath:  getEnv("BROWSER_DUMP_PATH", "debug_timeout.html"),
		BrowserUserAgent: getEnv("BROWSER_USER_AGENT", ""),

		CrawlSeasons: splitCSV(getEnv("CRAWL_SEASONS", "2026-2027,2025-2026,2024-2025")),
		ReportMarker: getEnv("REPORT_MARKER", ".scorebox"),

		LogLevel: parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}

	var err error
	if cfg.ReadTimeout, err = getEnvAsDuration("READ_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse READ_TIMEOUT: %w", err)
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("WRITE_TIMEOUT", 120*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse WRITE_TIMEOUT: %w", err)
	}
	if cfg.DirectFetchTimeout, err = getEnvAsDuration("DIRECT_FETCH_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse DIRECT_FETCH_TIMEOUT: %w", err)
	}
	if cfg.SolverProbeTimeout, err = getEnvAsDuration("SOLVER_PROBE_TIMEOUT", 2*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse SOLVER_PROBE_TIMEOUT: %w", err)
	}
	if cfg.SolverTimeout, err = getEnvAsDuration("SOLVER_TIMEOUT", 60*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse SOLVER_TIMEOUT: %w", err)
	}
	if cfg.SolverMaxTimeoutMS, err = getEnvAsInt("SOLVER_MAX_TIMEOUT_MS", 55000); err != nil {
		return Config{}, fmt.Errorf("parse SOLVER_MAX_TIMEOUT_MS: %w", err)
	}
	if cfg.SolverCircuitEnabled, err = getEnvAsBool("SOLVER_CIRCUIT_ENABLED", true); err != nil {
		return Config{}, fmt.Errorf("parse SOLVER_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.SolverCircuitFailures, err = getEnvAsInt("SOLVER_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return Config{}, fmt.Errorf("parse SOLVER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.SolverCircuitOpenTimeout, err = getEnvAsDuration("SOLVER_CIRCUIT_OPEN_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse SOLVER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if cfg.SolverCircuitHalfOpenMax, err = getEnvAsInt("SOLVER_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return Config{}, fmt.Errorf("parse SOLVER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.BrowserPollInterval, err = getEnvAsDuration("BROWSER_POLL_INTERVAL", 2*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse BROWSER_POLL_INTERVAL: %w", err)
	}
	if cfg.BrowserPollAttempts, err = getEnvAsInt("BROWSER_POLL_ATTEMPTS", 15); err != nil {
		return Config{}, fmt.Errorf("parse BROWSER_POLL_ATTEMPTS: %w", err)
	}
	if cfg.CrawlDelayMin, err = getEnvAsDuration("CRAWL_DELAY_MIN", 2*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse CRAWL_DELAY_MIN: %w", err)
	}
	if cfg.CrawlDelayMax, err = getEnvAsDuration("CRAWL_DELAY_MAX", 5*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse CRAWL_DELAY_MAX: %w", err)
	}
	if cfg.FixtureHorizon, err = getEnvAsInt("FIXTURE_HORIZON_DAYS", 30); err != nil {
		return Config{}, fmt.Errorf("parse FIXTURE_HORIZON_DAYS: %w", err)
	}

	if cfg.CrawlDelayMax < cfg.CrawlDelayMin {
		return Config{}, fmt.Errorf("CRAWL_DELAY_MAX must be >= CRAWL_DELAY_MIN")
	}
	if len(cfg.CrawlSeasons) == 0 {
		return Config{}, fmt.Errorf("CRAWL_SEASONS must name at least one season")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.ParseBool(value)
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return time.ParseDuration(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
