package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup. It is loaded once in
// main and handed to the App; nothing reads the environment after that.
type Config struct {
	Port      string
	DBDriver  string // "postgres" or "sqlite"
	DBDSN     string
	JWTSecret []byte
	TokenTTL  time.Duration
}

func LoadConfig() (Config, error) {
	// Load .env file if present; existing env vars win.
	_ = godotenv.Load()

	cfg := Config{
		Port:     getEnv("PORT", "8081"),
		DBDriver: getEnv("DB_DRIVER", "postgres"),
		DBDSN:    getEnv("DB_DSN", ""),
	}

	if cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN is required")
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
		slog.Warn("JWT_SECRET not set, using insecure development default")
	}
	cfg.JWTSecret = []byte(secret)

	ttlHours := 24
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL_HOURS %q", v)
		}
		ttlHours = n
	}
	cfg.TokenTTL = time.Duration(ttlHours) * time.Hour

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
