package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreMongo  = "mongo"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port              string
	LogLevel          logrus.Level
	SessionStore      string
	SessionExpiration time.Duration
	CookieKey         string
	MongoURI          string
	Database          string
	SessionCollection string
	RateLimitMax      int
}

// LoadENV will load the .env file if the GO_ENV environment variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Load reads the configuration from the environment and fills in defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              ":" + GetEnv("PORT", "8080"),
		SessionStore:      GetEnv("SESSION_STORE", SessionStoreMemory),
		CookieKey:         os.Getenv("COOKIE_KEY"),
		MongoURI:          os.Getenv("MONGODB_URI"),
		Database:          os.Getenv("DATABASE"),
		SessionCollection: GetEnv("SESSION_COLLECTION", "sessions"),
	}

	level, err := logrus.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.SessionExpiration, err = time.ParseDuration(GetEnv("SESSION_EXPIRATION", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_EXPIRATION: %w", err)
	}

	cfg.RateLimitMax, err = strconv.Atoi(GetEnv("RATE_LIMIT_MAX", "120"))
	if err != nil || cfg.RateLimitMax < 1 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MAX %q", os.Getenv("RATE_LIMIT_MAX"))
	}

	if cfg.CookieKey == "" {
		cfg.CookieKey = encryptcookie.GenerateKey()
	} else if key, err := base64.StdEncoding.DecodeString(cfg.CookieKey); err != nil || len(key) != 32 {
		return nil, errors.New("COOKIE_KEY must be a base64 encoded 32 byte key")
	}

	switch cfg.SessionStore {
	case SessionStoreMemory:
	case SessionStoreMongo:
		if cfg.MongoURI == "" {
			return nil, errors.New("you must set your 'MONGODB_URI' environmental variable. See\n\t https://www.mongodb.com/docs/drivers/go/current/usage-examples/#environment-variable")
		}
		if cfg.Database == "" {
			return nil, errors.New("you must set your 'DATABASE' environmental variable")
		}
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}

	return cfg, nil
}

// GetEnv func to get env values, falling back to def when unset
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
