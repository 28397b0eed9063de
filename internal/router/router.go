package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brightpath-edu/report-card-api/internal/config"
	"github.com/brightpath-edu/report-card-api/internal/handler"
	"github.com/brightpath-edu/report-card-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	StudentHandler *handler.StudentHandler
	ReportHandler  *handler.ReportHandler
	AuthHandler    *handler.AuthHandler
	SeedHandler    *handler.SeedHandler
	JWTMiddleware  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.StudentHandler != nil {
		students := api.Group("/students", jwtMiddleware)
		deps.StudentHandler.Register(students)

		if deps.ReportHandler != nil {
			deps.ReportHandler.Register(students)
		}

		deps.StudentHandler.RegisterSubjects(api.Group("/subjects", jwtMiddleware))
	}

	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(api.Group("/seed"))
	}
}
