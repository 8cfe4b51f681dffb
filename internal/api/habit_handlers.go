package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/habits-server/internal/domain"
	"github.com/listenupapp/habits-server/internal/service"
)

func (s *Server) registerHabitRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createHabit",
		Method:        http.MethodPost,
		Path:          "/habits",
		Summary:       "Create habit",
		Description:   "Defines a habit starting today, applicable on the given weekdays",
		Tags:          []string{"Habits"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateHabit)

	huma.Register(s.api, huma.Operation{
		OperationID:   "toggleHabit",
		Method:        http.MethodPatch,
		Path:          "/habits/{id}/toggle",
		Summary:       "Toggle habit",
		Description:   "Marks the habit completed today, or clears today's completion",
		Tags:          []string{"Habits"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleToggleHabit)
}

// === DTOs ===

// HabitResponse contains habit data in API responses.
type HabitResponse struct {
	ID        string    `json:"id" doc:"Habit ID"`
	Title     string    `json:"title" doc:"Habit title"`
	CreatedAt time.Time `json:"created_at" doc:"Start of the day the habit was created"`
}

func newHabitResponse(h *domain.Habit) HabitResponse {
	return HabitResponse{ID: h.ID, Title: h.Title, CreatedAt: h.CreatedAt}
}

// CreateHabitRequest is the request body for creating a habit.
type CreateHabitRequest struct {
	Title    string `json:"title" minLength:"1" doc:"Habit title"`
	WeekDays []int  `json:"weekDays" doc:"Weekdays the habit applies on, 0 (Sunday) to 6 (Saturday)"`
}

// CreateHabitInput wraps the create habit request for Huma.
type CreateHabitInput struct {
	Body CreateHabitRequest
}

// ToggleHabitInput contains parameters for toggling a habit.
type ToggleHabitInput struct {
	ID string `path:"id" format:"uuid" doc:"Habit ID"`
}

// === Handlers ===

func (s *Server) handleCreateHabit(ctx context.Context, input *CreateHabitInput) (*struct{}, error) {
	_, err := s.services.Habit.CreateHabit(ctx, service.CreateHabitRequest{
		Title:    input.Body.Title,
		WeekDays: input.Body.WeekDays,
	})
	if err != nil {
		return nil, s.toAPIError(err)
	}
	return nil, nil
}

func (s *Server) handleToggleHabit(ctx context.Context, input *ToggleHabitInput) (*struct{}, error) {
	if _, err := s.services.Toggle.ToggleHabit(ctx, input.ID); err != nil {
		return nil, s.toAPIError(err)
	}
	return nil, nil
}
