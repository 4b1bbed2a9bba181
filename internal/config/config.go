package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings read from the environment at startup.
type Config struct {
	Port          string
	DatabaseURL   string
	RedisURL      string
	RouteCacheTTL time.Duration
	BatchLimit    int
	MinPoints     int
	SeedPath      string
}

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment win over .env entries.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ttl, err := GetDuration("ROUTE_CACHE_TTL", time.Hour)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	batchLimit, err := GetInt("BATCH_LIMIT", 4)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if batchLimit < 1 {
		return Config{}, fmt.Errorf("load config: BATCH_LIMIT must be at least 1, got %d", batchLimit)
	}

	minPoints, err := GetInt("MIN_POINTS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if minPoints < 0 {
		return Config{}, fmt.Errorf("load config: MIN_POINTS must not be negative, got %d", minPoints)
	}

	return Config{
		Port:          Get("PORT", "8080"),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:      strings.TrimSpace(os.Getenv("REDIS_URL")),
		RouteCacheTTL: ttl,
		BatchLimit:    batchLimit,
		MinPoints:     minPoints,
		SeedPath:      Get("SEED_PATH", "data/seeds/boards.json"),
	}, nil
}

// Get returns the value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q as integer: %w", key, v, err)
	}
	return n, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}
