package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the process-wide settings read from the environment.
// Database connection settings are read directly by the db package so
// that DATABASE_URL can override the discrete POSTGRES_* variables.
type Config struct {
	Port string

	JWTSecret string
	AccessTTL time.Duration

	// RedisAddr is optional. Empty disables the listing cache.
	RedisAddr string
	CacheTTL  time.Duration

	// FrontendURL is used for CORS. Empty allows any origin.
	FrontendURL string
}

func Load() (Config, error) {
	cfg := Config{
		Port:        os.Getenv("PORT"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AccessTTL:   15 * time.Minute,
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		CacheTTL:    5 * time.Minute,
		FrontendURL: os.Getenv("FE_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	if v := os.Getenv("ACCESS_TTL_MINUTES"); v != "" {
		mins, err := strconv.Atoi(v)
		if err != nil || mins <= 0 {
			return Config{}, fmt.Errorf("ACCESS_TTL_MINUTES must be a positive number")
		}
		cfg.AccessTTL = time.Duration(mins) * time.Minute
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("CACHE_TTL_SECONDS must be a positive number")
		}
		cfg.CacheTTL = time.Duration(secs) * time.Second
	}

	return cfg, nil
}
