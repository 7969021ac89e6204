package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	Environment string

	// Timezone in which weekdays, day bounds and happy hour windows are evaluated
	Location *time.Location

	PromotionCacheTTL time.Duration
	RedisAddr         string
	RedisPassword     string

	PublicMenuBaseURL string
	PricingWorkers    int
}

// Load reads the configuration from the environment, after loading .env
// when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		Environment:       getEnv("APP_ENV", "production"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		PublicMenuBaseURL: getEnv("PUBLIC_MENU_BASE_URL", "http://localhost:5173"),
	}

	loc, err := time.LoadLocation(getEnv("BUSINESS_TIMEZONE", "Europe/Istanbul"))
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	ttl, err := time.ParseDuration(getEnv("PROMOTION_CACHE_TTL", "30s"))
	if err != nil || ttl < 0 {
		return nil, fmt.Errorf("invalid PROMOTION_CACHE_TTL %q", os.Getenv("PROMOTION_CACHE_TTL"))
	}
	cfg.PromotionCacheTTL = ttl

	workers, err := strconv.Atoi(getEnv("PRICING_WORKERS", "4"))
	if err != nil || workers < 1 {
		return nil, fmt.Errorf("invalid PRICING_WORKERS %q", os.Getenv("PRICING_WORKERS"))
	}
	cfg.PricingWorkers = workers

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
