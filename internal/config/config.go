// Package config loads the habits server configuration from flags, environment variables and .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig       `embed:""`
	Logger    LoggerConfig    `embed:""`
	Server    ServerConfig    `embed:""`
	RateLimit RateLimitConfig `embed:""`
	Database  DatabaseConfig  `embed:""`
	Calendar  CalendarConfig  `embed:""`

	EnvFile string `name:"env-file" env:"ENV_FILE" default:".env" help:"Path to .env file."`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `name:"env" env:"ENV" default:"development" help:"Environment (development, staging, production)."`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `name:"log-level" env:"LOG_LEVEL" default:"info" help:"Log level (debug, info, warn, error)."`
	File  string `name:"log-file" env:"LOG_FILE" help:"Also write logs to this file, rotated by size."`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port               string        `name:"port" env:"SERVER_PORT" default:"8080" help:"Server port."`
	ReadTimeout        time.Duration `name:"read-timeout" env:"SERVER_READ_TIMEOUT" default:"15s" help:"HTTP read timeout."`
	WriteTimeout       time.Duration `name:"write-timeout" env:"SERVER_WRITE_TIMEOUT" default:"15s" help:"HTTP write timeout."`
	IdleTimeout        time.Duration `name:"idle-timeout" env:"SERVER_IDLE_TIMEOUT" default:"60s" help:"HTTP idle timeout."`
	CORSAllowedOrigins []string      `name:"cors-allowed-origins" env:"CORS_ALLOWED_ORIGINS" sep:"," help:"Comma separated origins allowed by CORS. Empty disables CORS."`
}

// RateLimitConfig holds per-client request limits. A zero RPS disables limiting.
type RateLimitConfig struct {
	RPS   float64 `name:"rate-limit-rps" env:"RATE_LIMIT_RPS" default:"20" help:"Requests per second allowed per client IP."`
	Burst int     `name:"rate-limit-burst" env:"RATE_LIMIT_BURST" default:"40" help:"Burst size per client IP."`
}

// DatabaseConfig selects and locates the datastore.
type DatabaseConfig struct {
	Driver string `name:"db-driver" env:"DB_DRIVER" default:"sqlite" help:"Datastore driver (sqlite, postgres)."`
	Path   string `name:"db-path" env:"DB_PATH" default:"~/.habits/habits.db" help:"SQLite database file."`
	URL    string `name:"database-url" env:"DATABASE_URL" help:"PostgreSQL connection string."`
}

// CalendarConfig controls how instants map to calendar days.
type CalendarConfig struct {
	Timezone string `name:"timezone" env:"CALENDAR_TIMEZONE" default:"Local" help:"IANA time zone whose local midnight starts a day."`

	location *time.Location `kong:"-"`
}

// Location returns the loaded calendar time zone. It is set by Validate.
func (c CalendarConfig) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Load parses args (without the program name) with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	// godotenv never overrides variables that are already set.
	_ = godotenv.Load(envFileFromArgs(args))

	cfg := &Config{}
	parser, err := kong.New(cfg,
		kong.Name("habits-server"),
		kong.Description("Habit tracking API server"),
	)
	if err != nil {
		return nil, fmt.Errorf("build flag parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Database.Driver == DriverSQLite {
		path, err := expandPath(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("invalid database path: %w", err)
		}
		cfg.Database.Path = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	case "":
		return errors.New("ENV is required")
	default:
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid database driver: %s (must be sqlite or postgres)", c.Database.Driver)
	}

	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("invalid rate limit: %v requests per second", c.RateLimit.RPS)
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("invalid rate limit burst: %d (must be at least 1)", c.RateLimit.Burst)
	}

	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Calendar.Timezone, err)
	}
	c.Calendar.location = loc

	return nil
}

// envFileFromArgs finds --env-file before kong runs, since the file has to
// be loaded before kong resolves env fallbacks.
func envFileFromArgs(args []string) string {
	for i, arg := range args {
		if v, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return v
		}
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("ENV_FILE"); v != "" {
		return v
	}
	return ".env"
}

// expandPath expands ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}
