package testcfg

import (
	"github.com/caarlos0/env/v11"
)

// Config holds test-specific configuration for pool API acceptance tests
type Config struct {
	MigrationsDir string `env:"WEB_TEST_MIGRATIONS_DIR" envDefault:"../migrator/migrations"`
	CacheKey      string `env:"WEB_TEST_CACHE_KEY" envDefault:"pool-data"`
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
