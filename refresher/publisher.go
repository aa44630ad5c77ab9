package refresher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// KV stores one value under a key, replacing any previous value
type KV interface {
	Put(ctx context.Context, key string, value []byte) error
}

// Publisher writes the record set to a local snapshot file and then to a
// key-value store under a single key
type Publisher struct {
	snapshotPath string
	key          string
	kv           KV
}

var _ Store = (*Publisher)(nil)

// NewPublisher creates a Publisher. An empty key falls back to DefaultCacheKey.
func NewPublisher(snapshotPath, key string, kv KV) *Publisher {
	if key == "" {
		key = DefaultCacheKey
	}
	return &Publisher{snapshotPath: snapshotPath, key: key, kv: kv}
}

// Publish replaces the snapshot file and the cached value with records
func (p *Publisher) Publish(ctx context.Context, records []CacheRecord) error {
	if records == nil {
		records = []CacheRecord{}
	}

	snapshot, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotFailed, err)
	}
	if err := writeFileAtomic(p.snapshotPath, snapshot); err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotFailed, err)
	}

	value, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	if err := p.kv.Put(ctx, p.key, value); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublishFailed, p.key, err)
	}
	return nil
}

// writeFileAtomic writes data next to path and renames it into place
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }() // no-op after rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
