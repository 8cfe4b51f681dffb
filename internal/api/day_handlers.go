package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerDayRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getDay",
		Method:      http.MethodGet,
		Path:        "/day",
		Summary:     "Get day",
		Description: "Returns the habits possible on a calendar day and the ids of those completed",
		Tags:        []string{"Days"},
	}, s.handleGetDay)
}

// GetDayInput contains parameters for reading a day.
type GetDayInput struct {
	Date string `query:"date" required:"true" doc:"ISO-8601 date or timestamp" example:"2024-01-10"`
}

// DayResponse is a calendar day in API responses.
type DayResponse struct {
	PossibleHabits  []HabitResponse `json:"possibleHabits" doc:"Habits that apply on the day"`
	CompletedHabits []string        `json:"completedHabits" doc:"IDs of habits completed on the day"`
}

// DayOutput wraps the day response for Huma.
type DayOutput struct {
	Body DayResponse
}

func (s *Server) handleGetDay(ctx context.Context, input *GetDayInput) (*DayOutput, error) {
	view, err := s.services.Day.GetDay(ctx, input.Date)
	if err != nil {
		return nil, s.toAPIError(err)
	}

	possible := make([]HabitResponse, len(view.PossibleHabits))
	for i, h := range view.PossibleHabits {
		possible[i] = newHabitResponse(h)
	}

	completed := view.CompletedHabitIDs
	if completed == nil {
		completed = []string{}
	}

	return &DayOutput{
		Body: DayResponse{
			PossibleHabits:  possible,
			CompletedHabits: completed,
		},
	}, nil
}
