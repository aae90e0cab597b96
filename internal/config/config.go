package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/voltedge/workshop-api/internal/models"
)

// Load reads configuration from .env (if present) and the environment.
func Load() (models.Config, error) {
	var cfg models.Config

	// Missing .env is fine in deployed environments
	_ = godotenv.Load()

	port := 8080
	if val := os.Getenv("PORT"); val != "" {
		p, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid PORT %q: %w", val, err)
		}
		port = p
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "dev"
	}

	cfg.Port = port
	cfg.Env = env
	cfg.DB = models.DBConfig{
		DSN:    os.Getenv("DATABASE_URL"),
		DEVDSN: os.Getenv("DEV_DATABASE_URL"),
	}

	if cfg.DB.DSN == "" && cfg.DB.DEVDSN == "" {
		return cfg, fmt.Errorf("DATABASE_URL or DEV_DATABASE_URL must be set")
	}

	return cfg, nil
}
