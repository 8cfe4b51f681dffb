package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/listenupapp/habits-server/internal/calendar"
	"github.com/listenupapp/habits-server/internal/domain"
	domainerrors "github.com/listenupapp/habits-server/internal/errors"
	"github.com/listenupapp/habits-server/internal/id"
	"github.com/listenupapp/habits-server/internal/store"
	"github.com/listenupapp/habits-server/internal/validation"
)

// ToggleService flips a habit's completion for the current day.
type ToggleService struct {
	store     store.Store
	ledger    *LedgerService
	calendar  *calendar.Calendar
	validator *validation.Validator
	logger    *slog.Logger
}

// NewToggleService creates a new toggle service.
func NewToggleService(
	store store.Store,
	ledger *LedgerService,
	cal *calendar.Calendar,
	validator *validation.Validator,
	logger *slog.Logger,
) *ToggleService {
	return &ToggleService{
		store:     store,
		ledger:    ledger,
		calendar:  cal,
		validator: validator,
		logger:    logger,
	}
}

// ToggleHabit marks habitID completed today if it was not, or clears the
// completion if it was. It returns the new completion state.
//
// Unknown habits fail with a NOT_FOUND error before any day row is created.
func (s *ToggleService) ToggleHabit(ctx context.Context, habitID string) (bool, error) {
	if err := s.validator.Var("id", habitID, "required,uuid"); err != nil {
		return false, err
	}
	habitID, err := id.Canonical(habitID)
	if err != nil {
		return false, err
	}

	exists, err := s.store.HabitExists(ctx, habitID)
	if err != nil {
		return false, storeError(err, "failed to look up habit")
	}
	if !exists {
		return false, domainerrors.NotFoundf("habit %s not found", habitID)
	}

	day, err := s.ledger.FindOrCreateDay(ctx, s.calendar.Now())
	if err != nil {
		return false, err
	}

	existing, err := s.store.GetDayHabit(ctx, day.ID, habitID)
	switch {
	case err == nil:
		if err := s.store.DeleteDayHabit(ctx, existing.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return false, storeError(err, "failed to clear completion")
		}
		s.logger.Info("habit completion cleared", "habit_id", habitID, "day_id", day.ID)
		return false, nil

	case errors.Is(err, store.ErrNotFound):
		rowID, err := id.Generate()
		if err != nil {
			return false, err
		}
		dh := &domain.DayHabit{ID: rowID, DayID: day.ID, HabitID: habitID}
		if err := s.store.CreateDayHabit(ctx, dh); err != nil {
			switch {
			case errors.Is(err, store.ErrAlreadyExists):
				return false, domainerrors.Conflict("habit was toggled concurrently").WithCause(err)
			case errors.Is(err, store.ErrConstraint):
				return false, domainerrors.Constraint("habit or day no longer exists").WithCause(err)
			}
			return false, storeError(err, "failed to record completion")
		}
		s.logger.Info("habit completed", "habit_id", habitID, "day_id", day.ID)
		return true, nil

	default:
		return false, storeError(err, "failed to look up completion")
	}
}
