package migrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/peterldowns/pgtestdb"
	"github.com/peterldowns/pgtestdb/migrators/sqlmigrator"
	migrate "github.com/rubenv/sql-migrate"

	"github.com/poolwatch/poolwatch/refresher/store/pgxstore"
)

// Migration constants
const (
	migrationsTableName = "schema_migrations"
	schemaHashPrefix    = "schema_only_"
	seededHashPrefix    = "seeded_cache_"
)

// Migration-related errors
var (
	ErrMigrationExecution = errors.New("migration execution failed")
	ErrSeedCache          = errors.New("cache seeding failed")
)

// SchemaMigrator applies only database schema migrations
// Used for production and tests that need schema-only setup
type SchemaMigrator struct {
	migrationsDir string
}

// NewSchemaMigrator creates a migrator that applies schema migrations only
func NewSchemaMigrator(migrationsDir string) *SchemaMigrator {
	return &SchemaMigrator{
		migrationsDir: migrationsDir,
	}
}

func (m *SchemaMigrator) Hash() (string, error) {
	baseHash, err := migrationsHash(m.migrationsDir)
	if err != nil {
		return "", err
	}
	return schemaHashPrefix + baseHash, nil
}

func (m *SchemaMigrator) Migrate(ctx context.Context, db *sql.DB, conf pgtestdb.Config) error {
	return applyMigrations(db, m.migrationsDir)
}

// SeededMigrator applies schema migrations and stores a cache snapshot
// under key, so readers find the same value the refresher last published
type SeededMigrator struct {
	migrationsDir string
	key           string
	snapshot      []byte
}

// NewSeededMigrator creates a migrator that applies schema + seeds the cache
func NewSeededMigrator(migrationsDir, key string, snapshot []byte) *SeededMigrator {
	return &SeededMigrator{
		migrationsDir: migrationsDir,
		key:           key,
		snapshot:      snapshot,
	}
}

func (m *SeededMigrator) Hash() (string, error) {
	baseHash, err := migrationsHash(m.migrationsDir)
	if err != nil {
		return "", err
	}

	sum := sha256.New()
	sum.Write([]byte(m.key))
	sum.Write([]byte{0})
	sum.Write(m.snapshot)
	return seededHashPrefix + baseHash + "_" + hex.EncodeToString(sum.Sum(nil)[:8]), nil
}

func (m *SeededMigrator) Migrate(ctx context.Context, db *sql.DB, conf pgtestdb.Config) error {
	if err := applyMigrations(db, m.migrationsDir); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO pool_cache (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, m.key, string(m.snapshot))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSeedCache, err)
	}
	return nil
}

// ApplyMigrations applies database migrations using sql-migrate with the provided pgx pool
func ApplyMigrations(pool *pgxpool.Pool, migrationsDir string) error {
	// Create sql.DB from the pgx pool for sql-migrate
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return applyMigrations(db, migrationsDir)
}

// SeedCacheFromSnapshot stores the snapshot file at path under key.
// An existing value is replaced.
func SeedCacheFromSnapshot(ctx context.Context, pool *pgxpool.Pool, key, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSeedCache, err)
	}

	store, _ := pgxstore.New(pool) // the caller owns the pool
	if err := store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrSeedCache, err)
	}
	return nil
}

// applyMigrations applies database migrations using sql-migrate
func applyMigrations(db *sql.DB, migrationsDir string) error {
	source := &migrate.FileMigrationSource{Dir: migrationsDir}
	migrationSet := &migrate.MigrationSet{TableName: migrationsTableName}

	_, err := migrationSet.Exec(db, "postgres", source, migrate.Up)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMigrationExecution, err)
	}
	return nil
}

func migrationsHash(migrationsDir string) (string, error) {
	source := &migrate.FileMigrationSource{Dir: migrationsDir}
	migrationSet := &migrate.MigrationSet{TableName: migrationsTableName}

	hash, err := sqlmigrator.New(source, migrationSet).Hash()
	if err != nil {
		return "", fmt.Errorf("failed to calculate migration hash for %s: %w", migrationsDir, err)
	}
	return hash, nil
}
