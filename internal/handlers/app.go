package handlers

import (
	"context"
	"time"

	"kiosk/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// RouteRegistrar is implemented by every handler group.
type RouteRegistrar interface {
	RegisterRoutes(router fiber.Router)
}

// HealthCheck reports whether the store is reachable.
type HealthCheck func(ctx context.Context) error

// Options configures NewApp.
type Options struct {
	Logger       logrus.FieldLogger
	StoreTimeout time.Duration
	Health       HealthCheck
}

// NewApp builds the Fiber application with the shared middleware, the
// health endpoint and the given route groups.
func NewApp(opts Options, registrars ...RouteRegistrar) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Kiosk API",
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if opts.Logger != nil {
		app.Use(middleware.RequestLogger(opts.Logger))
	}
	if opts.StoreTimeout > 0 {
		app.Use(middleware.StoreDeadline(opts.StoreTimeout))
	}

	app.Get("/health", healthHandler(opts.Health))

	for _, r := range registrars {
		r.RegisterRoutes(app)
	}
	return app
}

func healthHandler(check HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, storeState, code := "healthy", "up", fiber.StatusOK
		if check != nil {
			if err := check(c.UserContext()); err != nil {
				status, storeState, code = "unhealthy", "down", fiber.StatusServiceUnavailable
			}
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
			"store":  storeState,
		})
	}
}
