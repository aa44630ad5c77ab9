package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/poolwatch/poolwatch/pkg/chain"
	"github.com/poolwatch/poolwatch/pkg/logger"
)

// Config holds all configuration loaded from environment variables
type Config struct {
	Chain chain.Config
	Log   logger.Config

	OutputFile string `env:"DISCOVER_OUTPUT_FILE" envDefault:"data.json"`
}

// New loads all configuration from environment variables
func New() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}
