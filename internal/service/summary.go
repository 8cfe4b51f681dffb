package service

import (
	"context"
	"log/slog"

	"github.com/listenupapp/habits-server/internal/calendar"
	"github.com/listenupapp/habits-server/internal/domain"
	"github.com/listenupapp/habits-server/internal/store"
)

// SummaryService produces the completion rollup across recorded days.
type SummaryService struct {
	store    store.Store
	calendar *calendar.Calendar
	logger   *slog.Logger
}

// NewSummaryService creates a new summary service.
func NewSummaryService(store store.Store, cal *calendar.Calendar, logger *slog.Logger) *SummaryService {
	return &SummaryService{store: store, calendar: cal, logger: logger}
}

// Summarize returns, per recorded day in date order, how many habits were
// completed and how many were eligible. Days never toggled are absent.
func (s *SummaryService) Summarize(ctx context.Context) ([]domain.DaySummary, error) {
	rows, err := s.store.Summarize(ctx)
	if err != nil {
		return nil, storeError(err, "failed to summarize days")
	}

	loc := s.calendar.Location()
	for i := range rows {
		rows[i].Date = rows[i].Date.In(loc)
	}
	return rows, nil
}
