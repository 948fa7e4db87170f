package handlers

import (
	"context"
	"time"

	"reefclean/internal/app"

	"github.com/gofiber/fiber/v2"
)

func HealthHandler(router fiber.Router, app *app.App) {
	router.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		state, database, code := "ok", "ok", fiber.StatusOK
		if err := app.Database.Ping(ctx); err != nil {
			state, database, code = "degraded", "unavailable", fiber.StatusServiceUnavailable
		}

		return c.Status(code).JSON(fiber.Map{
			"status":   state,
			"version":  app.Config.GeneralVersion,
			"service":  "reefclean_api",
			"database": database,
		})
	})
}
