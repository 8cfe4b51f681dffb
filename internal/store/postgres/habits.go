package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/listenupapp/habits-server/internal/domain"
	"github.com/listenupapp/habits-server/internal/id"
	"github.com/listenupapp/habits-server/internal/store"
)

const habitColumns = `h.id, h.title, h.created_at`

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

// CreateHabit inserts a habit and its weekday rows in a single transaction.
// The weekday rows are written with one unnest over parallel arrays.
func (s *Store) CreateHabit(ctx context.Context, habit *domain.Habit) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO habits (id, title, created_at) VALUES ($1, $2, $3)`,
		habit.ID, habit.Title, toMillis(habit.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithCause(err)
		}
		return fmt.Errorf("insert habit: %w", err)
	}

	if len(habit.WeekDays) > 0 {
		rowIDs := make([]string, len(habit.WeekDays))
		weekDays := make([]int64, len(habit.WeekDays))
		for i, w := range habit.WeekDays {
			if rowIDs[i], err = id.Generate(); err != nil {
				return err
			}
			weekDays[i] = int64(w)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO habit_week_days (id, habit_id, week_day)
			SELECT u.id, $1, u.week_day
			FROM unnest($2::text[], $3::smallint[]) AS u(id, week_day)`,
			habit.ID, pq.Array(rowIDs), pq.Array(weekDays),
		)
		if err != nil {
			return fmt.Errorf("insert habit weekdays: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit habit: %w", err)
	}
	return nil
}

// HabitExists reports whether a habit with the given ID exists.
func (s *Store) HabitExists(ctx context.Context, habitID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM habits WHERE id = $1)`, habitID,
	).Scan(&exists)
	return exists, err
}

// ListPossibleHabits returns the habits created on or before date that apply
// on weekday, ordered by creation, then title, then id.
func (s *Store) ListPossibleHabits(ctx context.Context, date time.Time, weekday int) ([]*domain.Habit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+habitColumns+`
		FROM habits h
		WHERE h.created_at <= $1
		  AND EXISTS (
		      SELECT 1 FROM habit_week_days w
		      WHERE w.habit_id = h.id AND w.week_day = $2
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
