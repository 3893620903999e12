// Package cache holds the cold-start result cache. The store is the only
// piece of mutable state the recommender owns; both backends guarantee that
// a reader never observes a partially written entry.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/velora/shoprec/pkg/models"
)

var (
	// ErrMiss is returned by Get when no entry exists for the key. Callers
	// fall through to live recomputation.
	ErrMiss = errors.New("cache: entry not found")
)

// Entry is one cached recommendation list with the time it was computed.
// Expiry is decided by the reader against its own TTL, not by the store.
type Entry struct {
	Timestamp time.Time                     `json:"timestamp"`
	Results   []models.RecommendationResult `json:"results"`
}

// Expired reports whether the entry is older than ttl at the given instant.
func (e *Entry) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.Timestamp) >= ttl
}

// MarshalBinary implements encoding.BinaryMarshaler so entries can be handed
// to go-redis directly.
func (e *Entry) MarshalBinary() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Entry) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, e)
}

// Store is the narrow cache boundary: get an entry, or atomically replace it.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, key string, entry *Entry) error
}
