package routes

import (
	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
) {
	api := app.Group("/api")

	// General API rate limiter per IP
	if cfg.RateLimitMax > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:               cfg.RateLimitMax,
			Expiration:        cfg.RateLimitWindow,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.Error("Too many requests"))
			},
		}))
	}

	api.Get("/health", healthHandler.Check)

	subs := api.Group("/subscriptions")

	// Reads require a bearer token
	protected := middleware.JWTProtected(cfg)
	subs.Get("/", protected, subscriptionHandler.List)
	subs.Get("/party-types", protected, subscriptionHandler.PartyTypes)
	subs.Get("/invoice-options", protected, subscriptionHandler.InvoiceOptions)
	subs.Get("/:id", protected, subscriptionHandler.Get)

	// Writes are open to guests
	subs.Post("/", subscriptionHandler.Create)
	subs.Put("/", subscriptionHandler.Update)
	subs.Put("/:id", subscriptionHandler.Update)
	subs.Delete("/", subscriptionHandler.Delete)
	subs.Delete("/:id", subscriptionHandler.Delete)
}
