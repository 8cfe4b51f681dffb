package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDay_PossibleHabitsFilter(t *testing.T) {
	ts := setupTestServer(t)

	ts.now = wednesday.AddDate(0, 0, -7)
	ts.createHabit(t, "A", 3)
	ts.createHabit(t, "B", 4)
	ts.createHabit(t, "D", 0, 3, 3)
	ts.now = wednesday.AddDate(0, 0, 5)
	ts.createHabit(t, "C", 3)

	day := ts.getDay(t, "2024-01-10T12:00:00Z")

	titles := make([]string, 0, len(day.PossibleHabits))
	for _, h := range day.PossibleHabits {
		titles = append(titles, h.Title)
	}
	assert.Equal(t, []string{"A", "D"}, titles)
	assert.NotNil(t, day.CompletedHabits)
}

func TestGetDay_AcceptedDateForms(t *testing.T) {
	ts := setupTestServer(t)
	ts.createHabit(t, "Read", 3)

	for _, date := range []string{
		"2024-01-10",
		"2024-01-10T00:00:00Z",
		"2024-01-10T23:59:59.999Z",
		"2024-01-10T08:15:00",
	} {
		day := ts.getDay(t, date)
		assert.Len(t, day.PossibleHabits, 1, date)
	}
}

func TestGetDay_EmptyListsRenderAsArrays(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/day?date=2024-01-10")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"possibleHabits":[],"completedHabits":[]}`, resp.Body.String())
}

func TestGetDay_InvalidDate(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/day?date=tomorrow")
	require.Equal(t, http.StatusBadRequest, resp.Code)

	apiErr := decodeError(t, resp.Body.Bytes())
	assert.Equal(t, "VALIDATION", apiErr.Code)
	details, ok := apiErr.Details.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "date")
}

func TestGetDay_MissingDate(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/day")
	assert.True(t, resp.Code == http.StatusBadRequest || resp.Code == http.StatusUnprocessableEntity,
		"expected 400 or 422, got %d", resp.Code)
}
