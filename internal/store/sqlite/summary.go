package sqlite

import (
	"context"

	"github.com/listenupapp/habits-server/internal/domain"
)

// summaryQuery computes both counts per day in one statement, so the rollup
// is read from a single snapshot. Eligibility compares the weekday stored on
// the day row.
const summaryQuery = `
	SELECT
		d.id,
		d.date,
		CAST((
			SELECT COUNT(*) FROM day_habits dh
			WHERE dh.day_id = d.id
		) AS REAL) AS completed,
		CAST((
			SELECT COUNT(*) FROM habit_week_days hw
			JOIN habits h ON h.id = hw.habit_id
			WHERE hw.week_day = d.week_day
			  AND h.created_at <= d.date
		) AS REAL) AS amount
	FROM days d
	ORDER BY d.date ASC`

// Summarize returns completed and eligible habit counts for every recorded day.
func (s *Store) Summarize(ctx context.Context) ([]domain.DaySummary, error) {
	rows, err := s.db.QueryContext(ctx, summaryQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.DaySummary{}
	for rows.Next() {
		var (
			row domain.DaySummary
			ms  int64
		)
		if err := rows.Scan(&row.ID, &ms, &row.Completed, &row.Amount); err != nil {
			return nil, err
		}
		row.Date = fromMillis(ms)
		out = append(out, row)
	}
	return out, rows.Err()
}
