package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/poolwatch/poolwatch/refresher"
)

// Sentinel errors for store operations
var (
	ErrInvalidURL = errors.New("invalid redis url")
	ErrSetFailed  = errors.New("redis set failed")
	ErrGetFailed  = errors.New("redis get failed")
	ErrNotFound   = refresher.ErrKeyNotFound
)

// Store implements refresher.KV on a Redis-protocol server
type Store struct {
	client redis.UniversalClient
}

var _ refresher.KV = (*Store)(nil)

// New creates a store on an existing client
func New(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

// Open connects to the server at url (redis:// or rediss://).
// Returns the store and a closer function
func Open(url string) (*Store, func(), error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	client := redis.NewClient(opts)
	closer := func() {
		_ = client.Close()
	}
	return New(client), closer, nil
}

// Put overwrites key with value and clears any expiry
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSetFailed, err)
	}
	return nil
}

// Get returns the value held under key
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGetFailed, err)
	}
	return value, nil
}
