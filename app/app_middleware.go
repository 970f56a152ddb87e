package app

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jalexanderII/session-todos/config"
	"github.com/jalexanderII/session-todos/views"
	"github.com/sirupsen/logrus"
)

// FiberMiddleware provides Fiber's built-in middlewares.
// See: https://docs.gofiber.io/api/middleware
func FiberMiddleware(a *fiber.App, cfg *config.Config, l *logrus.Logger) {
	a.Use(
		// Add simple logger.
		logger.New(logger.Config{
			Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
			Output: l.Out,
		}),
		// Add CORS to each route.
		cors.New(),
		// add rate limiter
		limiter.New(limiter.Config{
			Max:               cfg.RateLimitMax,
			Expiration:        30 * time.Second,
			LimiterMiddleware: limiter.SlidingWindow{},
		}),
		// recover from panic
		recover.New(),
		// session cookies are encrypted with the configured key
		encryptcookie.New(encryptcookie.Config{
			Key: cfg.CookieKey,
		}),
	)

	// Cache the embedded assets, never the session backed pages.
	a.Use("/static",
		cache.New(cache.Config{Expiration: time.Hour}),
		filesystem.New(filesystem.Config{Root: views.Static()}),
	)
}
