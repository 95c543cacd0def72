// Package main provides the Approved Premises questionnaire API server.
package main

import (
	"log/slog"
	"strconv"

	"github.com/dukex/approved-premises/pkg/services"
	"github.com/dukex/approved-premises/pkg/session"
	"github.com/dukex/approved-premises/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger   *slog.Logger
	journeys services.Journeys
	sessions session.Store
	validate *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	journeys services.Journeys,
	sessions session.Store,
) *API {
	return &API{
		logger:   logger,
		journeys: journeys,
		sessions: sessions,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewHandlers(a.journeys, a.sessions, a.validate, a.logger)

	app := fiber.New()

	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Approved Premises API")
	})

	web.Mount(app, handlers)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
