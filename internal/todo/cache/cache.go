// Package cache defines the shared cache surface the repositories, the
// post-commit invalidation listener and the task lock run against. The
// production driver is Redis; an in-memory driver backs tests and local dev.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache is the minimal command set we use. Sets have no per-member expiry,
// only a whole-key TTL refreshed on every SAdd.
type Cache interface {
	// Get returns the value for key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given TTL. Zero TTL means no
	// expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes the keys. Missing keys are not an error.
	Del(ctx context.Context, keys ...string) error

	// SAdd appends members to the set at key.
	SAdd(ctx context.Context, key string, members ...[]byte) error

	// SMembers returns all members of the set at key. A missing key
	// yields an empty slice, which readers treat as a miss.
	SMembers(ctx context.Context, key string) ([][]byte, error)

	// Expire sets the TTL on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// SetNX stores value only if key is absent, reporting whether it was
	// set. Used for the distributed task lock.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
}
