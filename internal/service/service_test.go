package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/listenupapp/habits-server/internal/calendar"
	"github.com/listenupapp/habits-server/internal/store"
	"github.com/listenupapp/habits-server/internal/store/sqlite"
	"github.com/listenupapp/habits-server/internal/validation"
)

// testClock is a settable clock for the calendar.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

type testServices struct {
	store   store.Store
	clock   *testClock
	cal     *calendar.Calendar
	habits  *HabitService
	ledger  *LedgerService
	toggles *ToggleService
	summary *SummaryService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestServices wires every service to a fresh SQLite store with the
// clock set to now. The calendar uses UTC.
func setupTestServices(t *testing.T, now time.Time) *testServices {
	t.Helper()
	logger := discardLogger()

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return newTestServices(s, now)
}

func newTestServices(s store.Store, now time.Time) *testServices {
	logger := discardLogger()
	clock := &testClock{now: now}
	cal := calendar.New(time.UTC).WithClock(clock.Now)
	v := validation.New()
	ledger := NewLedgerService(s, cal, logger)

	return &testServices{
		store:   s,
		clock:   clock,
		cal:     cal,
		habits:  NewHabitService(s, cal, v, logger),
		ledger:  ledger,
		toggles: NewToggleService(s, ledger, cal, v, logger),
		summary: NewSummaryService(s, cal, logger),
	}
}

func jan(d, hour int) time.Time {
	return time.Date(2024, 1, d, hour, 0, 0, 0, time.UTC)
}
