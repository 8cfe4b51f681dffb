// Package di provides dependency injection configuration for the habits server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/habits-server/internal/calendar"
	"github.com/listenupapp/habits-server/internal/config"
	"github.com/listenupapp/habits-server/internal/di/providers"
	"github.com/listenupapp/habits-server/internal/service"
	"github.com/listenupapp/habits-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideCalendar)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideHabitService)
	do.Provide(injector, providers.ProvideLedgerService)
	do.Provide(injector, providers.ProvideDayService)
	do.Provide(injector, providers.ProvideToggleService)
	do.Provide(injector, providers.ProvideSummaryService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*providers.LoggerHandle](injector)
	_ = do.MustInvoke[*calendar.Calendar](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*service.HabitService](injector)
	_ = do.MustInvoke[*service.LedgerService](injector)
	_ = do.MustInvoke[*service.DayService](injector)
	_ = do.MustInvoke[*service.ToggleService](injector)
	_ = do.MustInvoke[*service.SummaryService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
