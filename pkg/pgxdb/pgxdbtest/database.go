package pgxdbtest

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for pgtestdb
	"github.com/peterldowns/pgtestdb"
	"github.com/stretchr/testify/require"

	"github.com/poolwatch/poolwatch/pkg/pgxdb"
)

// Config locates the Postgres server that hosts the test databases
type Config struct {
	User     string `env:"PGTESTDB_USER" envDefault:"poolwatch"`
	Password string `env:"PGTESTDB_PASSWORD" envDefault:"poolwatch"`
	Host     string `env:"PGTESTDB_HOST" envDefault:"localhost"`
	Port     string `env:"PGTESTDB_PORT" envDefault:"5432"`
	Options  string `env:"PGTESTDB_OPTIONS" envDefault:"sslmode=disable"`
}

func parseConfig() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}

// CreateTestDatabase creates a fresh database prepared by migrator.
// Returns the connection pool and database URL for further connections.
func CreateTestDatabase(t *testing.T, migrator pgtestdb.Migrator) (*pgxpool.Pool, string) {
	t.Helper()

	cfg := env.Must(parseConfig())
	dbConfig := pgtestdb.Custom(t, pgtestdb.Config{
		DriverName: "pgx",
		User:       cfg.User,
		Password:   cfg.Password,
		Host:       cfg.Host,
		Port:       cfg.Port,
		Options:    cfg.Options,
	}, migrator)
	dbURL := dbConfig.URL()

	t.Logf("testdbconf: %s", dbURL)

	pool, err := pgxdb.NewConnection(t.Context(), dbURL,
		pgxdb.WithMaxConns(2),
		pgxdb.WithConnectTimeout(5*time.Second),
	)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool, dbURL
}
