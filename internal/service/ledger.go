package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/listenupapp/habits-server/internal/calendar"
	"github.com/listenupapp/habits-server/internal/domain"
	"github.com/listenupapp/habits-server/internal/id"
	"github.com/listenupapp/habits-server/internal/store"
)

// LedgerService owns the per-day ledger rows.
type LedgerService struct {
	store    store.Store
	calendar *calendar.Calendar
	logger   *slog.Logger

	// Collapses concurrent find-or-create calls for the same date in this process.
	inflight singleflight.Group
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(store store.Store, cal *calendar.Calendar, logger *slog.Logger) *LedgerService {
	return &LedgerService{
		store:    store,
		calendar: cal,
		logger:   logger,
	}
}

// FindOrCreateDay returns the ledger row for date's calendar day, creating it
// if needed. At most one row per date exists regardless of concurrency.
func (s *LedgerService) FindOrCreateDay(ctx context.Context, date time.Time) (*domain.Day, error) {
	day, weekday := s.calendar.Normalize(date)
	key := strconv.FormatInt(day.UnixMilli(), 10)

	// The shared work outlives any single caller; each caller still stops
	// waiting when its own context ends.
	ch := s.inflight.DoChan(key, func() (any, error) {
		return s.findOrCreateDay(context.WithoutCancel(ctx), day, weekday)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}

	// Callers sharing a flight get their own copy.
	d := *res.Val.(*domain.Day)
	d.Date = d.Date.In(s.calendar.Location())
	return &d, nil
}

func (s *LedgerService) findOrCreateDay(ctx context.Context, date time.Time, weekday int) (*domain.Day, error) {
	existing, err := s.store.GetDayByDate(ctx, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, storeError(err, "failed to look up day")
	}

	dayID, err := id.Generate()
	if err != nil {
		return nil, err
	}
	day := &domain.Day{ID: dayID, Date: date, WeekDay: weekday}

	if err := s.store.CreateDay(ctx, day); err != nil {
		if !errors.Is(err, store.ErrAlreadyExists) {
			return nil, storeError(err, "failed to create day")
		}

		// Another writer created the row between our read and insert.
		existing, err := s.store.GetDayByDate(ctx, date)
		if err != nil {
			return nil, storeError(err, "failed to re-read day")
		}
		s.logger.Debug("day created concurrently, using existing row", "day_id", existing.ID)
		return existing, nil
	}

	s.logger.Info("day created", "day_id", day.ID, "date", date, "week_day", weekday)
	return day, nil
}

// GetDayWithCompletions reads date's calendar day and the habits completed on
// it. A day that was never recorded yields a nil Day and no completions.
func (s *LedgerService) GetDayWithCompletions(ctx context.Context, date time.Time) (*domain.DayWithCompletions, error) {
	normalized := s.calendar.StartOfDay(date)

	day, err := s.store.GetDayByDate(ctx, normalized)
	if errors.Is(err, store.ErrNotFound) {
		return &domain.DayWithCompletions{CompletedHabitIDs: []string{}}, nil
	}
	if err != nil {
		return nil, storeError(err, "failed to look up day")
	}

	ids, err := s.store.ListCompletedHabitIDs(ctx, day.ID)
	if err != nil {
		return nil, storeError(err, "failed to list completions")
	}

	day.Date = day.Date.In(s.calendar.Location())
	return &domain.DayWithCompletions{Day: day, CompletedHabitIDs: ids}, nil
}
