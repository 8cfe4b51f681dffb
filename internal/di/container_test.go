package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/habits-server/internal/config"
	"github.com/listenupapp/habits-server/internal/di/providers"
	"github.com/listenupapp/habits-server/internal/service"
)

func TestContainer_ResolvesServices(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		App:      config.AppConfig{Environment: "development"},
		Logger:   config.LoggerConfig{Level: "error", File: filepath.Join(dir, "habits.log")},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(dir, "db", "habits.db")},
		Calendar: config.CalendarConfig{Timezone: "UTC"},
	}
	require.NoError(t, cfg.Validate())

	injector := NewContainer()
	do.OverrideValue(injector, cfg)

	storeHandle := do.MustInvoke[*providers.StoreHandle](injector)
	require.NoError(t, storeHandle.Ping(context.Background()))

	habits := do.MustInvoke[*service.HabitService](injector)
	habit, err := habits.CreateHabit(context.Background(), service.CreateHabitRequest{Title: "Stretch", WeekDays: []int{1, 3}})
	require.NoError(t, err)
	assert.Equal(t, "Stretch", habit.Title)

	summary, err := do.MustInvoke[*service.SummaryService](injector).Summarize(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary)

	require.NoError(t, injector.Shutdown())

	_, err = os.Stat(cfg.Database.Path)
	assert.NoError(t, err, "sqlite file should exist after bootstrap")
}

func TestHTTPServerHandle_Shutdown(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		App:      config.AppConfig{Environment: "production"},
		Logger:   config.LoggerConfig{Level: "error"},
		Server:   config.ServerConfig{Port: "0", ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(dir, "habits.db")},
		Calendar: config.CalendarConfig{Timezone: "UTC"},
	}
	require.NoError(t, cfg.Validate())

	injector := NewContainer()
	do.OverrideValue(injector, cfg)

	handle := do.MustInvoke[*providers.HTTPServerHandle](injector)
	require.NotNil(t, handle.Handler)
	assert.Equal(t, ":0", handle.Addr)

	assert.NoError(t, injector.Shutdown())
}
