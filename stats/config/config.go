package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/poolwatch/poolwatch/pkg/logger"
	"github.com/poolwatch/poolwatch/stats"
)

// Config holds all configuration loaded from environment variables
type Config struct {
	Log logger.Config

	InputFile  string `env:"STATS_INPUT_FILE" envDefault:"data.json"`
	OutputFile string `env:"STATS_OUTPUT_FILE" envDefault:"avg.txt"`

	VxtoolsAPIURL     string        `env:"STATS_VXTOOLS_API_URL" envDefault:"https://api.vx.tools"`
	SampleLimit       int           `env:"STATS_SAMPLE_LIMIT" envDefault:"100"`
	Concurrency       int           `env:"STATS_CONCURRENCY" envDefault:"8"`
	HttpClientTimeout time.Duration `env:"STATS_HTTP_CLIENT_TIMEOUT" envDefault:"30s"`

	// TrackedEpochs is a comma-separated epoch list; empty means the default schedule
	TrackedEpochs string `env:"STATS_TRACKED_EPOCHS"`
	// Groups is "name=e1,e2;name=e3"
	Groups string `env:"STATS_GROUPS"`
}

// New loads all configuration from environment variables
func New() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}

// Schedule builds the epoch schedule the report covers
func (c Config) Schedule() (stats.Schedule, error) {
	if c.TrackedEpochs == "" {
		return stats.DefaultSchedule(), nil
	}
	return stats.ParseSchedule(c.TrackedEpochs, c.Groups)
}
