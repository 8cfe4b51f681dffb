package domain

import "time"

// Habit is a recurring habit definition.
// CreatedAt is the start of the calendar day the habit was defined on and never changes.
type Habit struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	WeekDays  []int     `json:"-"` // Applicable weekdays as supplied, duplicates kept
}
