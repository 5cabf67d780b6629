package config

import (
	"fmt"
	"time"

	"replenish-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig assembles the pgx pool settings from environment
// variables. Integers fall back to their defaults like the rest of the
// config; a malformed duration fails startup instead, since silently
// shrinking a retry delay or timeout is worse than not starting.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	cfg := &database.DBConfig{
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       getEnvInt("DB_PORT", 5432),
		Username:   getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "replenish"),
		MaxConns:   int32(getEnvInt("DB_MAX_CONNECTIONS", 25)),
		MinConns:   int32(getEnvInt("DB_MIN_CONNECTIONS", 5)),
		MaxRetries: getEnvInt("DB_MAX_RETRIES", 5),
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"DB_MAX_CONN_LIFETIME", "5m", &cfg.MaxConnLifetime},
		{"DB_MAX_CONN_IDLE_TIME", "1m", &cfg.MaxConnIdleTime},
		{"DB_HEALTH_CHECK_PERIOD", "1m", &cfg.HealthCheckPeriod},
		{"DB_RETRY_DELAY", "1s", &cfg.RetryDelay},
		{"DB_CONNECT_TIMEOUT", "10s", &cfg.ConnectTimeout},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}

	return cfg, nil
}
