// Package cache provides the key-value TTL cache consulted before, and
// populated after, store reads. The cache is always disposable: absence
// or failure must never change correctness, only latency.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores serialized payloads under string keys with a TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the payload stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. Entries expire after ttl; there is no
	// explicit invalidation.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Noop is the cache used when no cache is configured or reachable.
// Every read misses and every write is dropped.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrCacheMiss
}

func (Noop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}
