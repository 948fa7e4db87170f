package app

import (
	"reefclean/config"
	"reefclean/internal/controllers"
	"reefclean/internal/database"
	"reefclean/internal/handlers/middleware"
	"reefclean/internal/repositories"
	"reefclean/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	app := Build(db, config)
	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

// Build wires repositories, services, controllers, and middleware on top of
// an open database.
func Build(db database.DB, config config.Config) *App {
	repos := repositories.New(db)
	svc := services.New(db, config)

	return &App{
		Database:    db,
		Config:      config,
		Services:    svc,
		Repos:       repos,
		Middleware:  middleware.New(db, config, repos, svc),
		Controllers: controllers.New(svc, repos, db),
	}
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
		a.Services.Transaction,
		a.Services.Token,
		a.Services.ReportExport,
		a.Repos.User,
		a.Controllers.Job,
		a.Controllers.Progress,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() error {
	return a.Database.Close()
}
