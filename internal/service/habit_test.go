package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/habits-server/internal/errors"
)

func TestHabitService_CreateHabit(t *testing.T) {
	ts := setupTestServices(t, jan(3, 15))
	ctx := context.Background()

	h, err := ts.habits.CreateHabit(ctx, CreateHabitRequest{Title: "  Drink water ", WeekDays: []int{1, 3}})
	require.NoError(t, err)

	assert.NotEmpty(t, h.ID)
	assert.Equal(t, "Drink water", h.Title)
	assert.True(t, h.CreatedAt.Equal(jan(3, 0)), "created_at should be start of today, got %v", h.CreatedAt)

	possible, err := ts.habits.ListPossibleHabits(ctx, jan(10, 12))
	require.NoError(t, err)
	require.Len(t, possible, 1)
	assert.Equal(t, h.ID, possible[0].ID)
}

func TestHabitService_CreateHabit_NormalizesToNFC(t *testing.T) {
	ts := setupTestServices(t, jan(3, 15))

	// "e" followed by a combining acute accent composes to "é".
	h, err := ts.habits.CreateHabit(context.Background(), CreateHabitRequest{Title: "Cafe\u0301", WeekDays: []int{}})
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", h.Title)
}

func TestHabitService_CreateHabit_LongTitle(t *testing.T) {
	ts := setupTestServices(t, jan(3, 15))

	title := strings.Repeat("a", 1000)
	h, err := ts.habits.CreateHabit(context.Background(), CreateHabitRequest{Title: title, WeekDays: []int{3}})
	require.NoError(t, err)
	assert.Equal(t, title, h.Title)
}

func TestHabitService_CreateHabit_Validation(t *testing.T) {
	ts := setupTestServices(t, jan(3, 15))
	ctx := context.Background()

	tests := []struct {
		name  string
		req   CreateHabitRequest
		field string
	}{
		{"blank title", CreateHabitRequest{Title: "   ", WeekDays: []int{1}}, "title"},
		{"weekday out of range", CreateHabitRequest{Title: "Run", WeekDays: []int{1, 2, 7}}, "weekDays[2]"},
		{"missing weekdays", CreateHabitRequest{Title: "Run"}, "weekDays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.habits.CreateHabit(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

			var domainErr *domainerrors.Error
			require.True(t, domainerrors.As(err, &domainErr))
			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.field)
		})
	}
}

// Fixture: 2024-01-10 is a Wednesday (3).
//
//	A created 01-03 on {3}       -> possible
//	B created 01-03 on {4}       -> wrong weekday
//	C created 01-15 on {3}       -> created after the date
//	D created 01-03 on {0, 3, 3} -> possible, listed once
func TestHabitService_ListPossibleHabits(t *testing.T) {
	ts := setupTestServices(t, jan(3, 9))
	ctx := context.Background()

	create := func(title string, weekDays ...int) {
		t.Helper()
		_, err := ts.habits.CreateHabit(ctx, CreateHabitRequest{Title: title, WeekDays: weekDays})
		require.NoError(t, err)
	}

	create("A", 3)
	create("B", 4)
	create("D", 0, 3, 3)
	ts.clock.now = jan(15, 9)
	create("C", 3)

	got, err := ts.habits.ListPossibleHabits(ctx, jan(10, 18))
	require.NoError(t, err)

	titles := make([]string, 0, len(got))
	for _, h := range got {
		titles = append(titles, h.Title)
	}
	assert.Equal(t, []string{"A", "D"}, titles)
}

func TestHabitService_ListPossibleHabits_Empty(t *testing.T) {
	ts := setupTestServices(t, jan(3, 9))

	got, err := ts.habits.ListPossibleHabits(context.Background(), jan(10, 0))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
