package app

import (
	"context"

	"sanitrack/config"
	"sanitrack/internal/controllers"
	"sanitrack/internal/database"
	"sanitrack/internal/events"
	"sanitrack/internal/handlers/middleware"
	"sanitrack/internal/jobs"
	"sanitrack/internal/repositories"
	"sanitrack/internal/services"
	"sanitrack/internal/websockets"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Websocket   *websockets.Manager
	EventBus    *events.EventBus
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	if err := db.MigrateModels(); err != nil {
		return &App{}, log.Err("failed to migrate models", err)
	}

	// The partial unique index on active tasks must exist before any task
	// endpoint is reachable.
	if err := db.CreateIndexes(); err != nil {
		return &App{}, log.Err("failed to create indexes", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	svc, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	repos := repositories.New(db)

	websocket, err := websockets.New(db, eventBus, config, svc.Token)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	middleware := middleware.New(db, svc.Token, config, repos)
	controllers := controllers.New(svc, repos, eventBus, config, db)

	if config.SchedulerEnabled {
		maintenanceJob := jobs.NewMaintenanceJob(controllers.Status, repos.Task, services.Daily)
		if err := svc.Scheduler.AddJob(maintenanceJob); err != nil {
			return &App{}, log.Err("failed to register maintenance job", err)
		}
		if err := svc.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  middleware,
		Websocket:   websocket,
		EventBus:    eventBus,
		Services:    svc,
		Repos:       repos,
		Controllers: controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Services.Token,
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Controllers.Auth,
		a.Controllers.Toilet,
		a.Controllers.Rating,
		a.Controllers.Cleaning,
		a.Controllers.Status,
		a.Controllers.User,
		a.Controllers.Stats,
		a.Repos.User,
		a.Repos.Toilet,
		a.Repos.Rating,
		a.Repos.Task,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
