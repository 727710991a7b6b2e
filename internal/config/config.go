package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// Config holds all environment-driven settings, read once at startup and
// immutable afterwards
type Config struct {
	Port                 string
	MongoURI             string
	MongoDB              string
	JWTSecret            string
	JWTExpirationHours   int64
	CORSOrigin           string
	Env                  string // "development" or "production"
	InitialAdminUsername string
}

// Load reads configuration from environment variables. The signing secret is
// required; everything else has a sensible default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		MongoURI:             getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:              getEnv("MONGODB_DB", "itemhub"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		CORSOrigin:           getEnv("CORS_ORIGIN", "*"),
		Env:                  getEnv("APP_ENV", "development"),
		InitialAdminUsername: os.Getenv("INITIAL_ADMIN_USERNAME"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set in environment")
	}

	expHours := int64(24)
	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			log.Printf("Invalid JWT_EXPIRATION_HOURS %q, defaulting to 24", raw)
		} else {
			expHours = parsed
		}
	}
	cfg.JWTExpirationHours = expHours

	return cfg, nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
