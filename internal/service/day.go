package service

import (
	"context"

	"github.com/listenupapp/habits-server/internal/calendar"
	"github.com/listenupapp/habits-server/internal/domain"
	domainerrors "github.com/listenupapp/habits-server/internal/errors"
)

// DayView is a calendar day as seen by a client: the habits that apply and
// which of them were completed.
type DayView struct {
	PossibleHabits    []*domain.Habit
	CompletedHabitIDs []string
}

// DayService answers per-day queries by combining the habit catalog with the ledger.
type DayService struct {
	habits   *HabitService
	ledger   *LedgerService
	calendar *calendar.Calendar
}

// NewDayService creates a new day service.
func NewDayService(habits *HabitService, ledger *LedgerService, cal *calendar.Calendar) *DayService {
	return &DayService{habits: habits, ledger: ledger, calendar: cal}
}

// GetDay parses rawDate as an ISO-8601 date or timestamp and returns the
// possible and completed habits for its calendar day.
func (s *DayService) GetDay(ctx context.Context, rawDate string) (*DayView, error) {
	date, err := s.calendar.ParseDate(rawDate)
	if err != nil {
		return nil, domainerrors.ValidationWithDetails("invalid date", map[string]string{
			"date": "must be an ISO-8601 date or timestamp",
		}).WithCause(err)
	}

	possible, err := s.habits.ListPossibleHabits(ctx, date)
	if err != nil {
		return nil, err
	}

	day, err := s.ledger.GetDayWithCompletions(ctx, date)
	if err != nil {
		return nil, err
	}

	return &DayView{
		PossibleHabits:    possible,
		CompletedHabitIDs: day.CompletedHabitIDs,
	}, nil
}
