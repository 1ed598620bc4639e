package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Collection synchronizes one named list of records with the store.
// Load seeds the key on first read; Save overwrites the full list. A stored
// value that no longer parses is treated as absent and reseeded, so an
// externally corrupted key degrades to defaults instead of failing every
// request.
type Collection[T any] struct {
	store  Store
	key    string
	seed   []T
	logger *zap.Logger
}

// NewCollection creates a collection bound to key. seed may be nil for
// collections that start empty.
func NewCollection[T any](s Store, key string, seed []T, logger *zap.Logger) *Collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection[T]{store: s, key: key, seed: seed, logger: logger}
}

// Load returns the stored list, writing and returning the seed when the key
// is absent or unreadable.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrKeyNotFound) {
		return c.reseed(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.Warn("malformed stored collection, reseeding",
			zap.String("key", c.key), zap.Error(err))
		return c.reseed(ctx)
	}
	return items, nil
}

// Save serializes the full list and overwrites the key.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

func (c *Collection[T]) reseed(ctx context.Context) ([]T, error) {
	if err := c.Save(ctx, c.seed); err != nil {
		return nil, err
	}
	return c.seed, nil
}

// ScopedCollection synchronizes event-scoped records: the stored value is a
// map from event id to that event's list, and saving one event's list
// rewrites the entire outer map.
type ScopedCollection[T any] struct {
	store  Store
	key    string
	logger *zap.Logger
}

// NewScopedCollection creates an event-scoped collection bound to key.
func NewScopedCollection[T any](s Store, key string, logger *zap.Logger) *ScopedCollection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScopedCollection[T]{store: s, key: key, logger: logger}
}

func (c *ScopedCollection[T]) load(ctx context.Context) (map[string][]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrKeyNotFound) {
		return map[string][]T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	var all map[string][]T
	if err := json.Unmarshal(raw, &all); err != nil {
		c.logger.Warn("malformed stored collection, starting empty",
			zap.String("key", c.key), zap.Error(err))
		return map[string][]T{}, nil
	}
	if all == nil {
		all = map[string][]T{}
	}
	return all, nil
}

// ListFor returns the records of one event, empty when none exist.
func (c *ScopedCollection[T]) ListFor(ctx context.Context, eventID string) ([]T, error) {
	all, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return all[eventID], nil
}

// SaveFor replaces one event's list and rewrites the whole outer map.
func (c *ScopedCollection[T]) SaveFor(ctx context.Context, eventID string, items []T) error {
	all, err := c.load(ctx)
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	all[eventID] = items
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// Record synchronizes a single-record key (settings, session, latest visitor
// registration).
type Record[T any] struct {
	store Store
	key   string
}

// NewRecord creates a single-record accessor bound to key.
func NewRecord[T any](s Store, key string) *Record[T] {
	return &Record[T]{store: s, key: key}
}

// Get returns the record and whether it exists. A value that fails to parse
// counts as absent.
func (r *Record[T]) Get(ctx context.Context) (T, bool, error) {
	var v T
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, ErrKeyNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("load %s: %w", r.key, err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, false, nil
	}
	return v, true, nil
}

// Put overwrites the record.
func (r *Record[T]) Put(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", r.key, err)
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", r.key, err)
	}
	return nil
}

// Clear removes the record.
func (r *Record[T]) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, r.key)
}
