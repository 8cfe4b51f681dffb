package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/listenupapp/habits-server/internal/domain"
	"github.com/listenupapp/habits-server/internal/store"
)

// GetDayByDate retrieves the day whose normalized date equals date exactly.
// Returns store.ErrNotFound if no such day exists.
func (s *Store) GetDayByDate(ctx context.Context, date time.Time) (*domain.Day, error) {
	var (
		d  domain.Day
		ms int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, date, week_day FROM days WHERE date = $1`, toMillis(date),
	).Scan(&d.ID, &ms, &d.WeekDay)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d.Date = fromMillis(ms)
	return &d, nil
}

// CreateDay inserts a day row.
// Returns store.ErrAlreadyExists if a day with the same date exists.
func (s *Store) CreateDay(ctx context.Context, day *domain.Day) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO days (id, date, week_day) VALUES ($1, $2, $3)`,
		day.ID, toMillis(day.Date), day.WeekDay,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithCause(err)
		}
		return fmt.Errorf("insert day: %w", err)
	}
	return nil
}

// ListCompletedHabitIDs returns the ids of habits completed on a day, sorted.
func (s *Store) ListCompletedHabitIDs(ctx context.Context, dayID string) ([]string, error) {
	var ids pq.StringArray
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(array_agg(habit_id ORDER BY habit_id), '{}')
		FROM day_habits WHERE day_id = $1`, dayID,
	).Scan(&ids)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		return []string{}, nil
	}
	return ids, nil
}

// GetDayHabit retrieves the completion row for (dayID, habitID).
// Returns store.ErrNotFound if the habit is not completed on that day.
func (s *Store) GetDayHabit(ctx context.Context, dayID, habitID string) (*domain.DayHabit, error) {
	var dh domain.DayHabit
	err := s.db.QueryRowContext(ctx,
		`SELECT id, day_id, habit_id FROM day_habits WHERE day_id = $1 AND habit_id = $2`,
		dayID, habitID,
	).Scan(&dh.ID, &dh.DayID, &dh.HabitID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dh, nil
}

// CreateDayHabit marks a habit completed on a day.
// Returns store.ErrAlreadyExists when the pair is already present and
// store.ErrConstraint when the day or habit no longer exists.
func (s *Store) CreateDayHabit(ctx context.Context, dh *domain.DayHabit) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO day_habits (id, day_id, habit_id) VALUES ($1, $2, $3)`,
		dh.ID, dh.DayID, dh.HabitID,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return store.ErrAlreadyExists.WithCause(err)
		case isForeignKeyViolation(err):
			return store.ErrConstraint.WithCause(err)
		}
		return fmt.Errorf("insert day habit: %w", err)
	}
	return nil
}

// DeleteDayHabit removes a completion row.
// Returns store.ErrNotFound if the row does not exist.
func (s *Store) DeleteDayHabit(ctx context.Context, dayHabitID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM day_habits WHERE id = $1`, dayHabitID)
	if err != nil {
		return fmt.Errorf("delete day habit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
