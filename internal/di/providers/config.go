// Package providers contains dependency injection providers for the habits server.
package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/listenupapp/habits-server/internal/config"
	"github.com/listenupapp/habits-server/internal/logger"
)

// ProvideConfig provides the application configuration parsed from os.Args.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.Load(os.Args[1:])
}

// LoggerHandle wraps the logger so its log file is closed on shutdown.
type LoggerHandle struct {
	*logger.Logger
}

// Shutdown implements do.Shutdownable.
func (h *LoggerHandle) Shutdown() error {
	return h.Close()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*LoggerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
		File:        cfg.Logger.File,
	})

	log.Info("Starting habits server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"db_driver", cfg.Database.Driver,
		"timezone", cfg.Calendar.Location().String(),
	)

	return &LoggerHandle{Logger: log}, nil
}
