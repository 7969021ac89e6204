package db

import (
	"fmt"
	"os"
	"strconv"
)

type PostgresConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns int
}

// LoadPostgresConfig reads DATABASE_URL, or the DB_* variables when it is unset.
func LoadPostgresConfig() (PostgresConfig, error) {
	cfg := PostgresConfig{
		URL:      os.Getenv("DATABASE_URL"),
		Host:     getEnv("DB_HOST", "localhost"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return PostgresConfig{}, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Port = port

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "20"))
	if err != nil || maxConns < 1 {
		return PostgresConfig{}, fmt.Errorf("invalid DB_MAX_OPEN_CONNS %q", os.Getenv("DB_MAX_OPEN_CONNS"))
	}
	cfg.MaxOpenConns = maxConns

	if cfg.URL == "" && cfg.DBName == "" {
		return PostgresConfig{}, fmt.Errorf("DATABASE_URL or DB_NAME is required")
	}
	return cfg, nil
}

func (c PostgresConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
