package handlers

import (
	"reefclean/internal/app"

	"github.com/gofiber/fiber/v2"
)

func Router(router fiber.Router, app *app.App) (err error) {
	router.Use(app.Middleware.TraceID())

	api := router.Group("/api")
	HealthHandler(api, app)

	api.Use(app.Middleware.Identify())
	NewUserHandler(*app, api).Register()
	NewClientHandler(*app, api).Register()
	NewVesselHandler(*app, api).Register()
	NewSectionHandler(*app, api).Register()
	NewJobHandler(*app, api).Register()
	NewProgressHandler(*app, api).Register()
	NewReportHandler(*app, api).Register()

	return nil
}
