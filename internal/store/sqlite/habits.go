package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/listenupapp/habits-server/internal/domain"
	"github.com/listenupapp/habits-server/internal/id"
	"github.com/listenupapp/habits-server/internal/store"
)

// habitColumns is the ordered list of columns selected in habit queries.
// Must match the scan order in scanHabit.
const habitColumns = `h.id, h.title, h.created_at`

// scanHabit scans a sql.Row (or sql.Rows via its Scan method) into a domain.Habit.
// WeekDays is left nil.
func scanHabit(scanner interface{ Scan(dest ...any) error }) (*domain.Habit, error) {
	var (
		h         domain.Habit
		createdAt int64
	)
	if err := scanner.Scan(&h.ID, &h.Title, &createdAt); err != nil {
		return nil, err
	}
	h.CreatedAt = fromMillis(createdAt)
	return &h, nil
}

// CreateHabit inserts a habit and one weekday row per entry of habit.WeekDays
// in a single transaction.
func (s *Store) CreateHabit(ctx context.Context, habit *domain.Habit) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO habits (id, title, created_at) VALUES (?, ?, ?)`,
		habit.ID, habit.Title, toMillis(habit.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithCause(err)
		}
		return fmt.Errorf("insert habit: %w", err)
	}

	for _, weekday := range habit.WeekDays {
		rowID, err := id.Generate()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO habit_week_days (id, habit_id, week_day) VALUES (?, ?, ?)`,
			rowID, habit.ID, weekday,
		)
		if err != nil {
			return fmt.Errorf("insert habit weekday: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit habit: %w", err)
	}
	return nil
}

// HabitExists reports whether a habit with the given ID exists.
func (s *Store) HabitExists(ctx context.Context, habitID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM habits WHERE id = ?`, habitID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListPossibleHabits returns the habits created on or before date that apply
// on weekday, ordered by creation, then title, then id.
func (s *Store) ListPossibleHabits(ctx context.Context, date time.Time, weekday int) ([]*domain.Habit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+habitColumns+`
		FROM habits h
		WHERE h.created_at <= ?
		  AND EXISTS (
		      SELECT 1 FROM habit_week_days w
		      WHERE w.habit_id = h.id AND w.week_day = ?
		  )
		ORDER BY h.created_at ASC, h.title ASC, h.id ASC`,
		toMillis(date), weekday,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []*domain.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return habits, nil
}
