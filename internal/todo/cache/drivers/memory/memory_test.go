package memory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/todohub/internal/todo/cache"
	"github.com/aussiebroadwan/todohub/internal/todo/cache/drivers/memory"
)

func TestGetSetDel(t *testing.T) {
	c := memory.New()
	ctx := t.Context()

	_, err := c.Get(ctx, "todo:1")
	require.ErrorIs(t, err, cache.ErrMiss)

	require.NoError(t, c.Set(ctx, "todo:1", []byte(`{"id":"1"}`), 5*time.Minute))

	got, err := c.Get(ctx, "todo:1")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"id":"1"}`), got)

	require.NoError(t, c.Del(ctx, "todo:1"))
	_, err = c.Get(ctx, "todo:1")
	require.ErrorIs(t, err, cache.ErrMiss)
}

func TestTTLExpiry(t *testing.T) {
	c := memory.New()
	ctx := t.Context()

	now := time.Now()
	c.SetClock(func() time.Time { return now })

	require.NoError(t, c.Set(ctx, "todo:1", []byte("x"), time.Minute))

	now = now.Add(2 * time.Minute)
	_, err := c.Get(ctx, "todo:1")
	require.ErrorIs(t, err, cache.ErrMiss)
}

func TestSets(t *testing.T) {
	c := memory.New()
	ctx := t.Context()

	members, err := c.SMembers(ctx, "todo_lists:u1")
	require.NoError(t, err)
	require.Empty(t, members, "missing set reads as empty")

	require.NoError(t, c.SAdd(ctx, "todo_lists:u1", []byte("a"), []byte("b")))
	require.NoError(t, c.SAdd(ctx, "todo_lists:u1", []byte("b")))

	members, err = c.SMembers(ctx, "todo_lists:u1")
	require.NoError(t, err)
	require.ElementsMatch(t, [][]byte{[]byte("a"), []byte("b")}, members)

	require.NoError(t, c.Del(ctx, "todo_lists:u1"))
	members, err = c.SMembers(ctx, "todo_lists:u1")
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestSetExpire(t *testing.T) {
	c := memory.New()
	ctx := t.Context()

	now := time.Now()
	c.SetClock(func() time.Time { return now })

	require.NoError(t, c.SAdd(ctx, "todo_lists:u1", []byte("a")))
	require.NoError(t, c.Expire(ctx, "todo_lists:u1", 12*time.Hour))

	now = now.Add(13 * time.Hour)
	members, err := c.SMembers(ctx, "todo_lists:u1")
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestSetNX(t *testing.T) {
	c := memory.New()
	ctx := t.Context()

	ok, err := c.SetNX(ctx, "lock_task:x", "t0", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.SetNX(ctx, "lock_task:x", "t1", time.Minute)
	require.NoError(t, err)
	require.False(t, ok, "second acquire must fail while held")

	require.NoError(t, c.Del(ctx, "lock_task:x"))
	ok, err = c.SetNX(ctx, "lock_task:x", "t2", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSetNXExpiredLockCanBeTaken(t *testing.T) {
	c := memory.New()
	ctx := t.Context()

	now := time.Now()
	c.SetClock(func() time.Time { return now })

	ok, err := c.SetNX(ctx, "lock_task:x", "t0", 10*time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(11 * time.Minute)
	ok, err = c.SetNX(ctx, "lock_task:x", "t1", 10*time.Minute)
	require.NoError(t, err)
	require.True(t, ok, "expired lock must be reacquirable")
}
