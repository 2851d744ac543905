package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

const prodString = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	LogLevel     string

	// Server settings.
	HTTPAddr string
	DBDSN    string

	// Gateway settings.
	GatewayAddr string
	ServerURL   string
}

// Load loads the server configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	cfg := loadCommon()

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":9090")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	return cfg, nil
}

// LoadGateway loads the gateway configuration. The gateway has no database;
// it only needs its listen address and the upstream server URL.
func LoadGateway() (*Config, error) {
	cfg := loadCommon()

	cfg.GatewayAddr = getEnv("GATEWAY_ADDR", ":8080")

	cfg.ServerURL = os.Getenv("SERVER_URL")
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("SERVER_URL is required")
	}

	return cfg, nil
}

func loadCommon() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == prodString

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	return cfg
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}
