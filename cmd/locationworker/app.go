package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/screenomics/locationworker/internal/config"
	"github.com/screenomics/locationworker/internal/domain"
	"github.com/screenomics/locationworker/internal/events"
	"github.com/screenomics/locationworker/internal/location"
	"github.com/screenomics/locationworker/internal/permission"
	"github.com/screenomics/locationworker/internal/platform/postgres"
	"github.com/screenomics/locationworker/internal/service/auth"
	"github.com/screenomics/locationworker/internal/task"
)

const (
	permissionSourcePostgres = "postgres"
	locationProviderHTTP     = "http"
)

// application holds the shared dependencies and owns their shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	gate         permission.Gate
	sampler      location.Sampler
	eventEmitter *events.InMemoryEventEmitter
	locationTask *task.LocationTask
	scheduler    *task.Scheduler
	jwtService   auth.JWTService
}

// newApplication wires the location task and registers it with the scheduler.
// db may be nil unless grants are read from Postgres.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB, console io.Writer) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.gate, err = buildGate(cfg, db, logger)
	if err != nil {
		return nil, err
	}

	provider, err := buildProvider(cfg, logger)
	if err != nil {
		return nil, err
	}
	app.sampler = location.NewProviderSampler(provider, logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewConsoleHandler(console))
	app.eventEmitter.RegisterHandler(events.NewLogHandler(logger))

	priority, err := domain.ParsePriority(cfg.Location.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid location priority: %w", err)
	}

	app.locationTask, err = task.NewLocationTask(
		task.LocationTaskConfig{Name: cfg.Worker.Name, Priority: priority},
		app.gate,
		app.sampler,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create location task: %w", err)
	}

	policy, err := task.ParsePolicy(cfg.Worker.Policy)
	if err != nil {
		return nil, err
	}

	app.scheduler = task.NewScheduler(task.SchedulerConfig{
		WorkerCount: cfg.Worker.WorkerCount,
		QueueSize:   cfg.Worker.QueueSize,
	}, logger)

	err = app.scheduler.Register(task.Registration{
		Name:         cfg.Worker.Name,
		Interval:     cfg.Worker.Interval,
		InitialDelay: cfg.Worker.InitialDelay,
		Policy:       policy,
	}, app.locationTask)
	if err != nil {
		return nil, fmt.Errorf("failed to register location task: %w", err)
	}

	if cfg.Auth.JWTSecret != "" {
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("trigger authentication enabled")
	} else {
		logger.Warn("auth.jwt_secret not set, /api routes are unauthenticated")
	}

	logger.Info("application initialized",
		"worker", cfg.Worker.Name,
		"interval", cfg.Worker.Interval.String(),
		"initial_delay", cfg.Worker.InitialDelay.String(),
		"priority", priority.String())

	return app, nil
}

func buildGate(cfg *config.Config, db *sql.DB, logger *slog.Logger) (permission.Gate, error) {
	if cfg.Permission.Source == permissionSourcePostgres {
		if db == nil {
			return nil, errors.New("permission source postgres requires a database connection")
		}
		store := postgres.NewPostgresGrantStore(db, logger)
		return permission.NewStoreGate(store, cfg.Permission.LookupTimeout, logger), nil
	}
	return permission.StaticGate(cfg.Permission.Granted), nil
}

func buildProvider(cfg *config.Config, logger *slog.Logger) (location.Provider, error) {
	if cfg.Location.Provider == locationProviderHTTP {
		return location.NewHTTPProvider(cfg.Location.HTTPEndpoint, cfg.Location.Timeout, logger), nil
	}
	if !cfg.Location.HasFix {
		return location.NewNoFixProvider(), nil
	}
	p, err := location.NewStaticProvider(cfg.Location.Latitude, cfg.Location.Longitude)
	if err != nil {
		return nil, fmt.Errorf("invalid static location: %w", err)
	}
	return p, nil
}

// Run starts the scheduler and serves HTTP until ctx is cancelled or a
// shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// runOnce performs a single invocation and reports whether it succeeded.
// After a successful dispatch it waits up to the configured grace period
// for the request to complete so that a quick fix is still printed before
// exit.
func (app *application) runOnce(ctx context.Context) bool {
	rec, err := app.scheduler.RunNow(ctx, app.config.Worker.Name)
	if err != nil {
		app.logger.Error("invocation could not be run", "error", err)
		return false
	}

	if rec.Outcome != domain.OutcomeSuccess {
		return false
	}

	grace := app.config.Worker.OnceGracePeriod
	if grace <= 0 {
		return true
	}

	// Done closes only after the emission listener has returned, so a fix is
	// printed by the time it fires. A nil channel never fires.
	var requestDone <-chan struct{}
	if p := app.locationTask.LastRequest(); p != nil {
		requestDone = p.Done()
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-requestDone:
	case <-timer.C:
		app.logger.Info("location request still pending after grace period", "grace_period", grace.String())
	case <-ctx.Done():
	}
	return true
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
