package testcfg

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds test-specific configuration for Stakewiz client acceptance tests
type Config struct {
	VoteAccount string        `env:"STAKEWIZ_TEST_VOTE_ACCOUNT,required"`
	HTTPTimeout time.Duration `env:"STAKEWIZ_TEST_HTTP_TIMEOUT" envDefault:"30s"`
	BaseURL     string        `env:"STAKEWIZ_TEST_BASE_URL" envDefault:"https://api.stakewiz.com"`
}

// parseConfig wraps env.Parse to return (Config, error) for use with env.Must
func parseConfig() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}

// New loads test configuration from environment variables
func New() Config {
	return env.Must(parseConfig())
}
