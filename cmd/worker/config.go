package main

import (
	"log"

	"replenish-backend/internal/shared/utils"
)

// Config holds the worker-local configuration. Everything else comes
// from the shared container config.
type Config struct {
	RedisAddr  string
	HealthPort string
}

func loadConfig() *Config {
	cfg := &Config{
		RedisAddr:  utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		HealthPort: utils.GetEnvVariable("WORKER_HEALTH_PORT", "9999"),
	}

	log.Printf("[Config] Redis: %s, health port: %s", cfg.RedisAddr, cfg.HealthPort)

	return cfg
}
