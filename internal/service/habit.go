package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/listenupapp/habits-server/internal/calendar"
	"github.com/listenupapp/habits-server/internal/domain"
	"github.com/listenupapp/habits-server/internal/id"
	"github.com/listenupapp/habits-server/internal/store"
	"github.com/listenupapp/habits-server/internal/validation"
)

// CreateHabitRequest is the input to HabitService.CreateHabit.
type CreateHabitRequest struct {
	Title    string `json:"title" validate:"required"`
	WeekDays []int  `json:"weekDays" validate:"required,dive,weekday"`
}

// HabitService manages habit definitions.
type HabitService struct {
	store     store.Store
	calendar  *calendar.Calendar
	validator *validation.Validator
	logger    *slog.Logger
}

// NewHabitService creates a new habit service.
func NewHabitService(store store.Store, cal *calendar.Calendar, validator *validation.Validator, logger *slog.Logger) *HabitService {
	return &HabitService{
		store:     store,
		calendar:  cal,
		validator: validator,
		logger:    logger,
	}
}

// CreateHabit defines a new habit starting today.
func (s *HabitService) CreateHabit(ctx context.Context, req CreateHabitRequest) (*domain.Habit, error) {
	req.Title = normalizeTitle(req.Title)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	habitID, err := id.Generate()
	if err != nil {
		return nil, err
	}

	habit := &domain.Habit{
		ID:        habitID,
		Title:     req.Title,
		CreatedAt: s.calendar.Today(),
		WeekDays:  req.WeekDays,
	}

	if err := s.store.CreateHabit(ctx, habit); err != nil {
		return nil, storeError(err, "failed to create habit")
	}

	s.logger.Info("habit created",
		"habit_id", habit.ID,
		"title", habit.Title,
		"week_days", habit.WeekDays,
	)

	return habit, nil
}

// ListPossibleHabits returns the habits that apply on date's calendar day:
// created on or before it and scheduled for its weekday.
func (s *HabitService) ListPossibleHabits(ctx context.Context, date time.Time) ([]*domain.Habit, error) {
	day, weekday := s.calendar.Normalize(date)

	habits, err := s.store.ListPossibleHabits(ctx, day, weekday)
	if err != nil {
		return nil, storeError(err, "failed to list possible habits")
	}

	loc := s.calendar.Location()
	for _, h := range habits {
		h.CreatedAt = h.CreatedAt.In(loc)
	}
	return habits, nil
}

// normalizeTitle trims surrounding whitespace and composes the title to NFC
// so visually identical titles are stored identically.
func normalizeTitle(title string) string {
	return norm.NFC.String(strings.TrimSpace(title))
}
