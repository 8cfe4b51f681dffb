package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/habits-server/internal/calendar"
	"github.com/listenupapp/habits-server/internal/config"
	"github.com/listenupapp/habits-server/internal/service"
	"github.com/listenupapp/habits-server/internal/validation"
)

// ProvideCalendar provides the calendar for the configured time zone.
func ProvideCalendar(i do.Injector) (*calendar.Calendar, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return calendar.New(cfg.Calendar.Location()), nil
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideHabitService provides the habit service.
func ProvideHabitService(i do.Injector) (*service.HabitService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cal := do.MustInvoke[*calendar.Calendar](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*LoggerHandle](i)

	return service.NewHabitService(storeHandle.Store, cal, v, log.Logger.Logger), nil
}

// ProvideLedgerService provides the day ledger service.
func ProvideLedgerService(i do.Injector) (*service.LedgerService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cal := do.MustInvoke[*calendar.Calendar](i)
	log := do.MustInvoke[*LoggerHandle](i)

	return service.NewLedgerService(storeHandle.Store, cal, log.Logger.Logger), nil
}

// ProvideDayService provides the day view service.
func ProvideDayService(i do.Injector) (*service.DayService, error) {
	habits := do.MustInvoke[*service.HabitService](i)
	ledger := do.MustInvoke[*service.LedgerService](i)
	cal := do.MustInvoke[*calendar.Calendar](i)

	return service.NewDayService(habits, ledger, cal), nil
}

// ProvideToggleService provides the completion toggle service.
func ProvideToggleService(i do.Injector) (*service.ToggleService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	ledger := do.MustInvoke[*service.LedgerService](i)
	cal := do.MustInvoke[*calendar.Calendar](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*LoggerHandle](i)

	return service.NewToggleService(storeHandle.Store, ledger, cal, v, log.Logger.Logger), nil
}

// ProvideSummaryService provides the summary service.
func ProvideSummaryService(i do.Injector) (*service.SummaryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cal := do.MustInvoke[*calendar.Calendar](i)
	log := do.MustInvoke[*LoggerHandle](i)

	return service.NewSummaryService(storeHandle.Store, cal, log.Logger.Logger), nil
}
