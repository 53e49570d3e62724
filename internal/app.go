package internal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/analytics"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/config"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/database"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/insights"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/jobs"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/logging"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/pkg/geoip"
)

// Application wires configuration, storage, the insight engine, the
// tracking collector, the background scheduler, and the HTTP server.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	DBManager *database.DBManager
	Fiber     *fiber.App
	Collector *analytics.Collector
	Cache     *insights.Cache

	geo       *geoip.Resolver
	scheduler *jobs.Scheduler
}

// NewApp creates a new application instance with default settings
func NewApp() (*Application, error) {
	cfg := config.GetConfig()
	return NewAppWithConfig(cfg)
}

// NewAppWithConfig creates a new application with the provided config
func NewAppWithConfig(cfg *config.Config) (*Application, error) {
	logger := logging.NewLogger(cfg)

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	db := dbManager.GetConnection()

	geo := geoip.NewResolver(cfg.GeoDBPath, logger)
	collector := analytics.NewCollector(db, logger, geo, cfg.TrackingQueueSize)

	builder := insights.NewSnapshotBuilder(db, logger)
	generator := insights.NewGenerator(cfg, logger)
	cache := insights.NewCache(db, logger, builder, generator)

	scheduler := jobs.NewScheduler(dbManager, logger, cfg, cache)

	fiberApp := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: cfg.IsProduction(),
	})
	fiberApp.Use(recover.New())

	MountRoutes(fiberApp, RouteDeps{
		DB:        db,
		Logger:    logger,
		Collector: collector,
		Cache:     cache,
	})

	return &Application{
		Config:    cfg,
		Logger:    logger,
		DBManager: dbManager,
		Fiber:     fiberApp,
		Collector: collector,
		Cache:     cache,
		geo:       geo,
		scheduler: scheduler,
	}, nil
}

// StartAsync starts the background jobs and the HTTP listener without
// blocking the caller.
func (a *Application) StartAsync() error {
	if err := a.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start background jobs: %w", err)
	}

	go func() {
		addr := ":" + a.Config.AppPort
		a.Logger.Info("HTTP server listening", slog.String("addr", addr))
		if err := a.Fiber.Listen(addr); err != nil {
			a.Logger.Error("HTTP server stopped", slog.Any("error", err))
		}
	}()

	return nil
}

// Shutdown stops the server, the scheduler, and the collector, flushing
// pending tracking writes before the database closes.
func (a *Application) Shutdown(ctx context.Context) error {
	a.scheduler.Stop()

	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		a.Logger.Error("Error shutting down HTTP server", slog.Any("error", err))
	}

	a.Collector.Close()

	if err := a.geo.Close(); err != nil {
		a.Logger.Warn("Error closing GeoIP resolver", slog.Any("error", err))
	}

	return a.DBManager.Close()
}
