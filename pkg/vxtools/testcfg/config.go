package testcfg

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds test-specific configuration for vx.tools client acceptance tests
type Config struct {
	Identity    string        `env:"VXTOOLS_TEST_IDENTITY,required"`
	Limit       int           `env:"VXTOOLS_TEST_LIMIT" envDefault:"5"`
	HTTPTimeout time.Duration `env:"VXTOOLS_TEST_HTTP_TIMEOUT" envDefault:"30s"`
	BaseURL     string        `env:"VXTOOLS_TEST_BASE_URL" envDefault:"https://api.vx.tools"`
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
