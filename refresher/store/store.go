// Package store opens the key-value backend that holds the published pool cache
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/poolwatch/poolwatch/pkg/pgxdb"
	"github.com/poolwatch/poolwatch/refresher"
	"github.com/poolwatch/poolwatch/refresher/store/pgxstore"
	"github.com/poolwatch/poolwatch/refresher/store/redisstore"
)

// Backend names a cache implementation
type Backend string

const (
	Redis    Backend = "redis"
	Postgres Backend = "postgres"
)

var ErrUnknownBackend = errors.New("unknown cache backend")

func (b *Backend) UnmarshalText(text []byte) error {
	switch v := Backend(text); v {
	case Redis, Postgres:
		*b = v
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, text)
	}
}

// Cache reads and replaces whole values by key
type Cache interface {
	refresher.KV
	Get(ctx context.Context, key string) ([]byte, error)
}

var (
	_ Cache = (*pgxstore.Store)(nil)
	_ Cache = (*redisstore.Store)(nil)
)

// Config selects and locates a backend
type Config struct {
	Backend     Backend
	RedisURL    string
	DatabaseURL string
}

// Open connects to the configured backend.
// Returns the cache and a closer function
func Open(ctx context.Context, cfg Config) (Cache, func(), error) {
	switch cfg.Backend {
	case Redis:
		cache, closer, err := redisstore.Open(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return cache, closer, nil
	case Postgres:
		db, err := pgxdb.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		cache, closer := pgxstore.New(db)
		return cache, closer, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
