package app

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/jalexanderII/session-todos/config"
	"github.com/jalexanderII/session-todos/database"
	"github.com/jalexanderII/session-todos/handlers"
	"github.com/jalexanderII/session-todos/models"
	"github.com/jalexanderII/session-todos/router"
	"github.com/jalexanderII/session-todos/views"
	"github.com/sirupsen/logrus"
)

// NewLogger returns the application logger configured from cfg.
func NewLogger(cfg *config.Config) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(cfg.LogLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// NewSessionStore builds the session store for cfg. The returned storage is
// nil when sessions live in memory.
func NewSessionStore(cfg *config.Config) (*session.Store, fiber.Storage, error) {
	sessionConfig := session.Config{
		Expiration:     cfg.SessionExpiration,
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}

	var storage fiber.Storage
	if cfg.SessionStore == config.SessionStoreMongo {
		s, err := database.NewSessionStorage(cfg)
		if err != nil {
			return nil, nil, err
		}
		storage = s
		sessionConfig.Storage = s
	}

	store := session.New(sessionConfig)
	store.RegisterType(models.Lists{})
	return store, storage, nil
}

// New creates the fiber app with middleware, views and routes attached. The
// returned function releases the session storage.
func New(cfg *config.Config, l *logrus.Logger) (*fiber.App, func() error, error) {
	store, storage, err := NewSessionStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeStorage := func() error {
		if storage == nil {
			return nil
		}
		return storage.Close()
	}

	// create app
	app := fiber.New(fiber.Config{
		AppName: "session-todos",
		Views:   views.NewEngine(),
	})

	// attach middleware
	FiberMiddleware(app, cfg, l)

	// setup routes
	router.SetupRoutes(app, handlers.NewHandler(store, l))

	// attach swagger
	config.AddSwaggerRoutes(app)

	return app, closeStorage, nil
}

// SetupAndRunApp handle app and session storage start and graceful shutdown
func SetupAndRunApp(cfg *config.Config, l *logrus.Logger) error {
	app, closeStorage, err := New(cfg, l)
	if err != nil {
		return err
	}

	// defer closing session storage
	defer func() {
		if err := closeStorage(); err != nil {
			l.WithError(err).Error("failed to close session storage")
		}
	}()

	return StartServerWithGracefulShutdown(app, cfg.Port, l)
}
