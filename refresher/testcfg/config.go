package testcfg

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds test-specific configuration for refresher acceptance tests
type Config struct {
	RedisURL      string        `env:"REFRESHER_TEST_REDIS_URL" envDefault:"redis://localhost:6379/15"`
	MigrationsDir string        `env:"REFRESHER_TEST_MIGRATIONS_DIR" envDefault:"../../../migrator/migrations"`
	CacheKey      string        `env:"REFRESHER_TEST_CACHE_KEY" envDefault:"pool-data-test"`
	Timeout       time.Duration `env:"REFRESHER_TEST_TIMEOUT" envDefault:"5s"`
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
