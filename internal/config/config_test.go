package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"ENV", "LOG_LEVEL", "LOG_FILE",
	"SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT", "CORS_ALLOWED_ORIGINS",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	"DB_DRIVER", "DB_PATH", "DATABASE_URL",
	"CALENDAR_TIMEZONE", "ENV_FILE",
}

// clearEnv unsets every variable Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
		os.Unsetenv(key) //nolint:errcheck // Test setup
	}
}

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Environment: "development"},
		Logger:   LoggerConfig{Level: "info"},
		Database: DatabaseConfig{Driver: DriverSQLite, Path: "/tmp/habits.db"},
		Calendar: CalendarConfig{Timezone: "UTC"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Empty(t, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.True(t, filepath.IsAbs(cfg.Database.Path), "path %q not expanded", cfg.Database.Path)
	assert.Equal(t, "habits.db", filepath.Base(cfg.Database.Path))
	assert.Equal(t, time.Local, cfg.Calendar.Location())
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := `# habits
SERVER_PORT=7000
LOG_LEVEL=debug
CALENDAR_TIMEZONE=Asia/Tokyo
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	// Real environment wins over the file, flags win over both.
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load([]string{"--env-file=" + envFile, "--port", "9090"})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, "Asia/Tokyo", cfg.Calendar.Location().String())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoad_Postgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://habits@localhost/habits?sslmode=disable")

	cfg, err := Load([]string{"--env-file", filepath.Join(t.TempDir(), "none")})
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://habits@localhost/habits?sslmode=disable", cfg.Database.URL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--no-such-flag"}},
		{"bad duration", []string{"--read-timeout", "soon"}},
		{"bad environment", []string{"--env", "test"}},
		{"postgres without url", []string{"--db-driver", "postgres"}},
		{"bad timezone", []string{"--timezone", "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			args := append([]string{"--env-file", filepath.Join(t.TempDir(), "none")}, tt.args...)
			_, err := Load(args)
			assert.Error(t, err)
		})
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.UTC, cfg.Calendar.Location())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true}, // case insensitive
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Database(t *testing.T) {
	tests := []struct {
		name    string
		db      DatabaseConfig
		wantErr string
	}{
		{"sqlite needs a path", DatabaseConfig{Driver: DriverSQLite}, "DB_PATH"},
		{"postgres needs a url", DatabaseConfig{Driver: DriverPostgres}, "DATABASE_URL"},
		{"unknown driver", DatabaseConfig{Driver: "mysql", URL: "x"}, "invalid database driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Database = tt.db

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_RateLimit(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit = RateLimitConfig{RPS: -1}
	assert.Error(t, cfg.Validate())

	cfg.RateLimit = RateLimitConfig{RPS: 5, Burst: 0}
	assert.Error(t, cfg.Validate())

	cfg.RateLimit = RateLimitConfig{RPS: 0, Burst: 0}
	assert.NoError(t, cfg.Validate(), "zero rps disables limiting")
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/habits/db.sqlite")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDir, "habits", "db.sqlite"), got)

	got, err = expandPath("/var/lib/../lib/habits.db")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/habits.db", got)

	got, err = expandPath("relative.db")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))

	got, err = expandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEnvFileFromArgs(t *testing.T) {
	t.Setenv("ENV_FILE", "")

	assert.Equal(t, "a.env", envFileFromArgs([]string{"--env-file", "a.env"}))
	assert.Equal(t, "b.env", envFileFromArgs([]string{"--port", "1", "--env-file=b.env"}))
	assert.Equal(t, ".env", envFileFromArgs(nil))

	t.Setenv("ENV_FILE", "c.env")
	assert.Equal(t, "c.env", envFileFromArgs(nil))
}
