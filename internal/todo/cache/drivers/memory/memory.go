// Package memory implements the cache interface in process memory. It backs
// tests and local development where no Redis is running. Expiry is checked
// lazily on read; nothing sweeps in the background.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aussiebroadwan/todohub/internal/todo/cache"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

type setEntry struct {
	members   map[string]struct{}
	expiresAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	sets    map[string]setEntry

	// now is swappable for expiry tests.
	now func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		sets:    make(map[string]setEntry),
		now:     time.Now,
	}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.expired(e.expiresAt) {
		delete(c.entries, key)
		return nil, fmt.Errorf("%w: %s", cache.ErrMiss, key)
	}
	return e.value, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, expiresAt: c.deadline(ttl)}
	return nil
}

func (c *Cache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
		delete(c.sets, key)
	}
	return nil
}

func (c *Cache) SAdd(_ context.Context, key string, members ...[]byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sets[key]
	if !ok || c.expired(s.expiresAt) {
		s = setEntry{members: make(map[string]struct{})}
	}
	for _, m := range members {
		s.members[string(m)] = struct{}{}
	}
	c.sets[key] = s
	return nil
}

func (c *Cache) SMembers(_ context.Context, key string) ([][]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sets[key]
	if !ok || c.expired(s.expiresAt) {
		delete(c.sets, key)
		return nil, nil
	}

	out := make([][]byte, 0, len(s.members))
	for m := range s.members {
		out = append(out, []byte(m))
	}
	return out, nil
}

func (c *Cache) Expire(_ context.Context, key string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.expiresAt = c.deadline(ttl)
		c.entries[key] = e
	}
	if s, ok := c.sets[key]; ok {
		s.expiresAt = c.deadline(ttl)
		c.sets[key] = s
	}
	return nil
}

func (c *Cache) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && !c.expired(e.expiresAt) {
		return false, nil
	}
	c.entries[key] = entry{value: []byte(value), expiresAt: c.deadline(ttl)}
	return true, nil
}

func (c *Cache) Ping(context.Context) error {
	return nil
}

// SetClock replaces the time source. Test hook.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Cache) deadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(ttl)
}

func (c *Cache) expired(at time.Time) bool {
	return !at.IsZero() && c.now().After(at)
}
