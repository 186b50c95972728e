package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pds/internal/middleware"
)

// Handlers groups every route owner mounted by NewApp.
type Handlers struct {
	Brand   *BrandHandler
	Product *ProductHandler
	Auth    *AuthHandler
	Health  *HealthHandler
}

// AppOptions tunes the middleware stack. A zero RateLimitMax disables rate limiting.
type AppOptions struct {
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// NewApp builds the Fiber application with middleware and all routes.
func NewApp(h Handlers, log *zap.Logger, opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "pds",
		ErrorHandler: NewErrorHandler(log),
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New())

	if opts.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimitMax,
			Expiration: opts.RateLimitWindow,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"success": false,
					"message": "Too many requests. Try again later.",
				})
			},
		}))
	}

	if h.Health != nil {
		h.Health.RegisterRoutes(app)
	}

	api := app.Group("/api")
	h.Brand.RegisterRoutes(api)
	h.Product.RegisterRoutes(api)
	h.Auth.RegisterRoutes(api)

	return app
}
