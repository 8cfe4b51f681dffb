package api

import "github.com/listenupapp/habits-server/internal/service"

// Services groups all business logic services used by the API server.
type Services struct {
	Habit   *service.HabitService
	Day     *service.DayService
	Toggle  *service.ToggleService
	Summary *service.SummaryService
}
