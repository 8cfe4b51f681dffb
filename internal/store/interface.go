// Package store defines the persistence interface for the habits server.
package store

import (
	"context"
	"time"

	"github.com/listenupapp/habits-server/internal/domain"
)

// Store defines the interface for all persistence operations.
//
// Instants passed in are expected to be start-of-day values already normalized
// by the calendar; the store compares them exactly and never derives weekdays.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error

	// Habits
	CreateHabit(ctx context.Context, habit *domain.Habit) error
	HabitExists(ctx context.Context, id string) (bool, error)
	ListPossibleHabits(ctx context.Context, date time.Time, weekday int) ([]*domain.Habit, error)

	// Days
	GetDayByDate(ctx context.Context, date time.Time) (*domain.Day, error)
	CreateDay(ctx context.Context, day *domain.Day) error
	ListCompletedHabitIDs(ctx context.Context, dayID string) ([]string, error)

	// Completions
	GetDayHabit(ctx context.Context, dayID, habitID string) (*domain.DayHabit, error)
	CreateDayHabit(ctx context.Context, dh *domain.DayHabit) error
	DeleteDayHabit(ctx context.Context, id string) error

	// Summary
	Summarize(ctx context.Context) ([]domain.DaySummary, error)
}
