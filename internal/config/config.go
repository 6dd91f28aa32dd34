package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"intervai/internal/store/sqlstore"
	"intervai/internal/voice"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Port     string
	Env      string
	Provider string

	StoreDriver string
	MongoURI    string
	MongoDB     string
	Postgres    sqlstore.PostgresConfig
	SQLitePath  string

	JWTSecret   string
	RedisAddr   string // events are disabled when empty
	CORSOrigins []string

	Voice voice.Config

	SessionTTL         time.Duration
	DraftSweepSchedule string
	DraftMaxAge        time.Duration
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	sessionTTL, err := getEnvDuration("SESSION_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	draftMaxAge, err := getEnvDuration("DRAFT_MAX_AGE", 72*time.Hour)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("APP_ENV", "production"),
		Provider:    getEnvOrDefault("AI_PROVIDER", "gemini"),
		StoreDriver: getEnvOrDefault("STORE_DRIVER", StoreMongo),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getEnvOrDefault("INTERVIEWS_DB_NAME", "intervai"),
		Postgres: sqlstore.PostgresConfig{
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			User:     getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("POSTGRES_DB", "postgres"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
			SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
		},
		SQLitePath:         getEnvOrDefault("SQLITE_PATH", "intervai.db"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		CORSOrigins:        getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		Voice:              *voice.NewConfig(),
		SessionTTL:         sessionTTL,
		DraftSweepSchedule: getEnvOrDefault("DRAFT_SWEEP_SCHEDULE", "0 3 * * *"),
		DraftMaxAge:        draftMaxAge,
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	// Gemini validation is handled by gemini.NewConfig()
	switch config.StoreDriver {
	case StoreMongo:
		if config.MongoURI == "" {
			return errors.New("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	case StorePostgres, StoreSQLite:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q: use mongo, postgres or sqlite", config.StoreDriver)
	}
	if config.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if config.SessionTTL <= 0 || config.DraftMaxAge <= 0 {
		return errors.New("SESSION_TTL and DRAFT_MAX_AGE must be positive")
	}
	return nil
}

// IsDevelopment reports whether the server runs with a development logger.
func (c *Config) IsDevelopment() bool {
	switch c.Env {
	case "development", "dev", "local":
		return true
	}
	return false
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// getEnvList splits a comma-separated variable, dropping blanks.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
