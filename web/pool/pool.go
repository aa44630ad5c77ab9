// Package pool answers read queries over the published validator cache
package pool

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/poolwatch/poolwatch/refresher"
)

// MaxLimit caps how many validators one query returns
const MaxLimit = 500

// Sentinel errors
var (
	ErrNotPublished = errors.New("pool data has not been published")
	ErrReadFailed   = errors.New("pool data read failed")
	ErrInvalidQuery = errors.New("invalid pool query")
)

// SortOrder orders query results
type SortOrder string

const (
	// SortPublished keeps the order the refresher wrote
	SortPublished SortOrder = ""
	// SortByStake orders by current stake, largest first
	SortByStake SortOrder = "stake"
	// SortByName orders by name, case-insensitively
	SortByName SortOrder = "name"
)

// Query filters and orders the cached validators
type Query struct {
	MinStake uint64
	Sort     SortOrder
	// Limit of 0 returns every matching validator
	Limit int
}

// NewQuery validates query parameters
func NewQuery(minStake uint64, sort string, limit int) (Query, error) {
	order := SortOrder(sort)
	switch order {
	case SortPublished, SortByStake, SortByName:
	default:
		return Query{}, fmt.Errorf("%w: unknown sort %q", ErrInvalidQuery, sort)
	}
	if limit < 0 || limit > MaxLimit {
		return Query{}, fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidQuery, MaxLimit)
	}
	return Query{MinStake: minStake, Sort: order, Limit: limit}, nil
}

// Page is one query's result
type Page struct {
	Validators []refresher.CacheRecord
	// Total counts every validator that passed the filter, before Limit
	Total int
}

// Reader fetches a cached value by key
type Reader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Finder runs queries against the value published under one key
type Finder struct {
	reader Reader
	key    string
}

// NewFinder creates a Finder; an empty key reads refresher.DefaultCacheKey
func NewFinder(reader Reader, key string) *Finder {
	if key == "" {
		key = refresher.DefaultCacheKey
	}
	return &Finder{reader: reader, key: key}
}

// Find loads the latest published records and applies q
func (f *Finder) Find(ctx context.Context, q Query) (Page, error) {
	data, err := f.reader.Get(ctx, f.key)
	if errors.Is(err, refresher.ErrKeyNotFound) {
		return Page{}, fmt.Errorf("%w: %w", ErrNotPublished, err)
	}
	if err != nil {
		return Page{}, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	var records []refresher.CacheRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return Page{}, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	return Apply(records, q), nil
}

// Apply filters, orders and truncates records without modifying them
func Apply(records []refresher.CacheRecord, q Query) Page {
	out := make([]refresher.CacheRecord, 0, len(records))
	for _, r := range records {
		if r.CurrentStake >= q.MinStake {
			out = append(out, r)
		}
	}

	switch q.Sort {
	case SortByStake:
		slices.SortStableFunc(out, func(a, b refresher.CacheRecord) int {
			return cmp.Compare(b.CurrentStake, a.CurrentStake)
		})
	case SortByName:
		slices.SortStableFunc(out, func(a, b refresher.CacheRecord) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}

	page := Page{Validators: out, Total: len(out)}
	if q.Limit > 0 && len(out) > q.Limit {
		page.Validators = out[:q.Limit]
	}
	return page
}
