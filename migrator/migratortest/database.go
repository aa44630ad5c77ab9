package migratortest

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poolwatch/poolwatch/migrator"
	"github.com/poolwatch/poolwatch/pkg/pgxdb/pgxdbtest"
)

// CreateCacheTestDatabase creates a test database with the schema applied
// and an empty cache table
func CreateCacheTestDatabase(t *testing.T, migrationsDir string) *pgxpool.Pool {
	t.Helper()

	pool, _ := pgxdbtest.CreateTestDatabase(t, migrator.NewSchemaMigrator(migrationsDir))
	return pool
}

// CreateSeededTestDatabase creates a test database whose cache table
// already holds snapshot under key
func CreateSeededTestDatabase(t *testing.T, migrationsDir, key string, snapshot []byte) *pgxpool.Pool {
	t.Helper()

	pool, _ := pgxdbtest.CreateTestDatabase(t, migrator.NewSeededMigrator(migrationsDir, key, snapshot))
	return pool
}
