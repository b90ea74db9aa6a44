package tasklock_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/todohub/pkg/tasklock"
)

type fakeStore struct {
	mu   sync.Mutex
	keys map[string]string

	lastTTL  time.Duration
	setNXErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{keys: make(map[string]string)}
}

func (f *fakeStore) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTTL = ttl
	if f.setNXErr != nil {
		return false, f.setNXErr
	}
	if _, held := f.keys[key]; held {
		return false, nil
	}
	f.keys[key] = value
	return true, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.keys, key)
	}
	return nil
}

func (f *fakeStore) held(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.keys[key]
	return ok
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestKeyDerivation(t *testing.T) {
	t.Run("name only", func(t *testing.T) {
		require.Equal(t, "lock_task:check_expired", tasklock.Key("check_expired", nil, nil))
	})

	t.Run("args", func(t *testing.T) {
		require.Equal(t, "lock_task:notify_user_42", tasklock.Key("notify_user", []string{"42"}, nil))
	})

	t.Run("kwargs sorted", func(t *testing.T) {
		key := tasklock.Key("sync", nil, map[string]string{"b": "2", "a": "1"})
		require.Equal(t, "lock_task:sync_a:1_b:2", key)
	})
}

func TestRunAcquiresAndReleases(t *testing.T) {
	store := newFakeStore()
	guard := tasklock.New(store, discardLogger())

	ran := false
	err := guard.Run(t.Context(), "check_expired", func(ctx context.Context) error {
		ran = true
		require.True(t, store.held("lock_task:check_expired"))
		return nil
	})
	require.NoError(t, err)
	require.True(t, ran)
	require.False(t, store.held("lock_task:check_expired"))
}

func TestLockTTL(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		store := newFakeStore()
		guard := tasklock.New(store, discardLogger())

		err := guard.Run(t.Context(), "check_expired", func(ctx context.Context) error { return nil })
		require.NoError(t, err)
		require.Equal(t, tasklock.DefaultTTL, store.lastTTL)
	})

	t.Run("custom", func(t *testing.T) {
		store := newFakeStore()
		guard := tasklock.NewWithTTL(store, discardLogger(), 30*time.Second)

		err := guard.Run(t.Context(), "check_expired", func(ctx context.Context) error { return nil })
		require.NoError(t, err)
		require.Equal(t, 30*time.Second, store.lastTTL)
	})
}

func TestRunSkipsWhenHeld(t *testing.T) {
	store := newFakeStore()
	store.keys["lock_task:check_expired"] = "someone-else"
	guard := tasklock.New(store, discardLogger())

	ran := false
	err := guard.Run(t.Context(), "check_expired", func(ctx context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	require.False(t, ran, "job must be skipped when the lock is held")
	require.True(t, store.held("lock_task:check_expired"), "held lock must not be released by the skipper")
}

func TestRunReleasesOnError(t *testing.T) {
	store := newFakeStore()
	guard := tasklock.New(store, discardLogger())

	jobErr := errors.New("boom")
	err := guard.Run(t.Context(), "check_expired", func(ctx context.Context) error {
		return jobErr
	})
	require.ErrorIs(t, err, jobErr)
	require.False(t, store.held("lock_task:check_expired"))
}

func TestRunReleasesOnPanic(t *testing.T) {
	store := newFakeStore()
	guard := tasklock.New(store, discardLogger())

	require.Panics(t, func() {
		_ = guard.Run(t.Context(), "check_expired", func(ctx context.Context) error {
			panic("boom")
		})
	})
	require.False(t, store.held("lock_task:check_expired"))
}

func TestRunPropagatesAcquireFailure(t *testing.T) {
	store := newFakeStore()
	store.setNXErr = errors.New("cache down")
	guard := tasklock.New(store, discardLogger())

	err := guard.Run(t.Context(), "check_expired", func(ctx context.Context) error {
		t.Fatal("job must not run when acquisition fails")
		return nil
	})
	require.Error(t, err)
}
