package domain

import "time"

// Day is the ledger row for one calendar day. Rows are created lazily by the
// first toggle on that date and Date is unique across all days.
type Day struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	WeekDay int       `json:"week_day"`
}

// DayHabit records that a habit was completed on a day. Presence means completed.
type DayHabit struct {
	ID      string `json:"id"`
	DayID   string `json:"day_id"`
	HabitID string `json:"habit_id"`
}

// DayWithCompletions is a day as read back for the ledger. Day is nil when no
// row exists for the date.
type DayWithCompletions struct {
	Day               *Day
	CompletedHabitIDs []string
}

// DaySummary is one row of the completion rollup.
// Completed and Amount are counts rendered as numbers.
type DaySummary struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Completed float64   `json:"completed"`
	Amount    float64   `json:"amount"`
}
