package pgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poolwatch/poolwatch/refresher"
)

// Sentinel errors for store operations
var (
	ErrPutFailed = errors.New("cache upsert failed")
	ErrGetFailed = errors.New("cache read failed")
	ErrNotFound  = refresher.ErrKeyNotFound
)

// Store implements refresher.KV on the pool_cache table
type Store struct {
	pool *pgxpool.Pool
}

var _ refresher.KV = (*Store)(nil)

// New creates a new PostgreSQL store with an existing connection pool
// Returns the store and a closer function
func New(pool *pgxpool.Pool) (*Store, func()) {
	store := &Store{pool: pool}
	closer := func() {
		pool.Close()
	}
	return store, closer
}

// Put replaces the value held under key
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO pool_cache (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPutFailed, err)
	}
	return nil
}

// Get returns the value held under key
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, "SELECT value FROM pool_cache WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGetFailed, err)
	}
	return value, nil
}
