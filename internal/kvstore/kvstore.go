// Package kvstore defines the flat key-value persistence boundary.
//
// Every collection in the application (transactions, fixed bills, payment
// map, investments, settings flags) is stored wholesale under a single key
// as a JSON-encoded string. Writes are last-write-wins; there is exactly
// one logical writer at a time, so no locking happens at this layer.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

//go:generate mockgen -source=kvstore.go -destination=store_mock.go -package=kvstore
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// GetJSON reads the value under key and unmarshals it into out.
// A missing key is not an error: out is left at its zero value, so an
// empty store reads as an empty collection.
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}

		return fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}

	return nil
}

// SetJSON marshals v and writes it under key, replacing the previous
// snapshot of the collection.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := s.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}
