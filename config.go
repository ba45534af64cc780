package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string   `env:"DATABASE_URL,required"`
	Addr           string   `env:"ADDR" envDefault:":8001"`
	AuthURL        string   `env:"AUTH_URL"`
	AuthToken      string   `env:"AUTH_TOKEN"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
}

// loadConfig reads an optional .env file, then the environment. Exactly one
// of AUTH_URL (external verifier) or AUTH_TOKEN (static operator token) must
// be set.
func loadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.AuthURL == "" && cfg.AuthToken == "" {
		return nil, fmt.Errorf("either AUTH_URL or AUTH_TOKEN must be set")
	}
	return cfg, nil
}
