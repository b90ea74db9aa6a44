// Package tasklock provides a best-effort distributed lock for scheduled
// jobs. Multiple worker replicas may fire the same job at the same time;
// only the one that wins the lock key actually runs it, the rest skip.
package tasklock

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// keyPrefix namespaces lock keys in the shared cache.
const keyPrefix = "lock_task:"

// DefaultTTL bounds how long a crashed worker can hold a lock. A job that
// legitimately runs longer than this risks a second runner; keep jobs short.
const DefaultTTL = 10 * time.Minute

// Store is the small slice of cache behaviour the lock needs.
type Store interface {
	// SetNX stores value under key only if the key is absent, returning
	// whether the key was set.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	// Del removes the given keys. Matches the cache driver signature so a
	// cache connection can back the lock directly.
	Del(ctx context.Context, keys ...string) error
}

// Guard acquires per-job locks before running them.
type Guard struct {
	store Store
	log   *slog.Logger
	ttl   time.Duration
}

// New creates a Guard with the default TTL.
func New(store Store, log *slog.Logger) *Guard {
	return &Guard{store: store, log: log, ttl: DefaultTTL}
}

// NewWithTTL creates a Guard with a custom lock TTL.
func NewWithTTL(store Store, log *slog.Logger, ttl time.Duration) *Guard {
	return &Guard{store: store, log: log, ttl: ttl}
}

// Key derives the lock key from the task name, its positional arguments and
// its keyword arguments. The kwargs are sorted so the key is stable
// regardless of map iteration order.
func Key(task string, args []string, kwargs map[string]string) string {
	parts := []string{task}
	parts = append(parts, args...)

	kvs := make([]string, 0, len(kwargs))
	for k, v := range kwargs {
		kvs = append(kvs, k+":"+v)
	}
	sort.Strings(kvs)
	parts = append(parts, kvs...)

	return keyPrefix + strings.Join(parts, "_")
}

// Run executes fn under the lock for the given task. If another runner holds
// the lock the job is skipped without error. The lock is always released
// when fn returns, including on error or panic; the TTL only matters if the
// process dies mid-job.
func (g *Guard) Run(ctx context.Context, task string, fn func(context.Context) error, args ...string) error {
	return g.RunKV(ctx, task, args, nil, fn)
}

// RunKV is Run with additional keyword arguments folded into the lock key.
func (g *Guard) RunKV(ctx context.Context, task string, args []string, kwargs map[string]string, fn func(context.Context) error) error {
	key := Key(task, args, kwargs)

	ok, err := g.store.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), g.ttl)
	if err != nil {
		return fmt.Errorf("tasklock: acquire %s: %w", key, err)
	}
	if !ok {
		g.log.InfoContext(ctx, "task lock held elsewhere, skipping",
			slog.String("task", task),
			slog.String("key", key))
		return nil
	}

	defer func() {
		// Release on a fresh context so job cancellation doesn't leave
		// the lock stuck until the TTL.
		relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := g.store.Del(relCtx, key); err != nil {
			g.log.WarnContext(ctx, "failed to release task lock",
				slog.String("key", key),
				slog.Any("error", err))
		}
	}()

	return fn(ctx)
}
