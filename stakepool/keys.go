package stakepool

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Sentinel errors for key file operations
var (
	ErrReadKeys  = errors.New("read validator keys failed")
	ErrWriteKeys = errors.New("write validator keys failed")
)

// ReadKeys loads the identity/vote-account rows from a JSON array file
func ReadKeys(path string) ([]ValidatorKeys, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadKeys, err)
	}

	var keys []ValidatorKeys
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadKeys, path, err)
	}
	return keys, nil
}

// WriteKeys overwrites path with keys as an indented JSON array
func WriteKeys(path string, keys []ValidatorKeys) error {
	if keys == nil {
		keys = []ValidatorKeys{}
	}

	data, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteKeys, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteKeys, err)
	}
	return nil
}

// Identities returns the identity column of keys, preserving order
func Identities(keys []ValidatorKeys) []string {
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = k.Identity
	}
	return ids
}
