package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Planning PlanningConfig
	Jobs     JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// PlanningConfig carries the fallback planning rules used when no template
// has been activated yet. The real rules live in the planning_rules table.
type PlanningConfig struct {
	DefaultLookBackDays    int
	DefaultTargetCoverDays int
	DefaultMinUnitsPerSKU  int
	DefaultMaxUnitsPerSKU  int
	DefaultSafetyStockPct  float64
}

// JobConfig carries the cron specs for the worker's periodic tasks.
type JobConfig struct {
	PlanGenerateCron  string
	InventorySyncCron string
	PlanPruneCron     string
	PlanRetentionDays int
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Replenish API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "replenish"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Planning: PlanningConfig{
			DefaultLookBackDays:    getEnvInt("PLAN_LOOK_BACK_DAYS", 30),
			DefaultTargetCoverDays: getEnvInt("PLAN_TARGET_COVER_DAYS", 14),
			DefaultMinUnitsPerSKU:  getEnvInt("PLAN_MIN_UNITS", 0),
			DefaultMaxUnitsPerSKU:  getEnvInt("PLAN_MAX_UNITS", 1000),
			DefaultSafetyStockPct:  getEnvFloat("PLAN_SAFETY_STOCK_PCT", 10),
		},
		Jobs: JobConfig{
			PlanGenerateCron:  getEnv("JOB_PLAN_GENERATE_CRON", "0 3 * * *"),
			InventorySyncCron: getEnv("JOB_INVENTORY_SYNC_CRON", "0 * * * *"),
			PlanPruneCron:     getEnv("JOB_PLAN_PRUNE_CRON", "30 4 * * *"),
			PlanRetentionDays: getEnvInt("JOB_PLAN_RETENTION_DAYS", 90),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks production-critical values.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if c.Planning.DefaultMaxUnitsPerSKU < c.Planning.DefaultMinUnitsPerSKU {
		return fmt.Errorf("PLAN_MAX_UNITS must not be below PLAN_MIN_UNITS")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
