// Package calendar normalizes instants to calendar days in a reference timezone.
//
// Every place that stores or compares a "day" goes through a Calendar so that two
// instants on the same calendar day always normalize to the same value.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Weekday indexes run from 0 (Sunday) to 6 (Saturday).
const (
	MinWeekday = 0
	MaxWeekday = 6
)

// layouts accepted by ParseDate, tried in order. Layouts without an offset
// are interpreted in the calendar's location.
var layouts = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339Nano, true},
	{time.RFC3339, true},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{time.DateOnly, false},
}

// Calendar maps instants to calendar days in a fixed location.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// New creates a calendar for loc. A nil loc means time.Local.
func New(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{loc: loc, now: time.Now}
}

// WithClock returns a copy of the calendar that reads the current time from now.
func (c *Calendar) WithClock(now func() time.Time) *Calendar {
	return &Calendar{loc: c.loc, now: now}
}

// Location returns the reference location.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// StartOfDay truncates t to midnight of its calendar day in the reference location.
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// Weekday returns the weekday index (0=Sunday..6=Saturday) of t's calendar day.
func (c *Calendar) Weekday(t time.Time) int {
	return int(t.In(c.loc).Weekday())
}

// Normalize returns the start of t's calendar day together with its weekday index.
func (c *Calendar) Normalize(t time.Time) (time.Time, int) {
	day := c.StartOfDay(t)
	return day, c.Weekday(day)
}

// Now returns the current instant according to the calendar's clock.
func (c *Calendar) Now() time.Time {
	return c.now()
}

// Today returns the start of the current calendar day.
func (c *Calendar) Today() time.Time {
	return c.StartOfDay(c.now())
}

// ParseDate parses an ISO-8601 date or timestamp.
func (c *Calendar) ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, l := range layouts {
		var (
			t   time.Time
			err error
		)
		if l.zoned {
			t, err = time.Parse(l.layout, s)
		} else {
			t, err = time.ParseInLocation(l.layout, s, c.loc)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ValidWeekday reports whether w is a weekday index.
func ValidWeekday(w int) bool {
	return w >= MinWeekday && w <= MaxWeekday
}
