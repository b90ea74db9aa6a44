package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/todohub/internal/todo/cache/drivers/memory"
	"github.com/aussiebroadwan/todohub/internal/todo/mail"
	"github.com/aussiebroadwan/todohub/pkg/tasklock"
	"github.com/aussiebroadwan/todohub/pkg/todosdk"
)

type fakeAPI struct {
	mu      sync.Mutex
	calls   int
	expired []todosdk.ExpiredTodo
	err     error
}

func (f *fakeAPI) UpdateExpiredTodos(context.Context) ([]todosdk.ExpiredTodo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.expired, f.err
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingSender struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.err
}

func newScheduler(api *fakeAPI, sender *recordingSender, c *memory.Cache) *Scheduler {
	log := slog.New(slog.DiscardHandler)
	return NewScheduler(api, tasklock.New(c, log), sender, log, time.Hour)
}

func TestTickMailsEachOwner(t *testing.T) {
	api := &fakeAPI{expired: []todosdk.ExpiredTodo{
		{
			Todo: todosdk.Todo{ID: "t1", Title: "pay rent", ValidUntil: time.Now().Add(-time.Hour)},
			User: todosdk.User{ID: "u1", Email: "alice@example.com"},
		},
		{
			Todo: todosdk.Todo{ID: "t2", Title: "water plants", ValidUntil: time.Now().Add(-time.Minute)},
			User: todosdk.User{ID: "u2", Email: "bob@example.com"},
		},
	}}
	sender := &recordingSender{}
	s := newScheduler(api, sender, memory.New())

	s.tick()

	require.Equal(t, 1, api.callCount())
	require.Len(t, sender.sent, 2)
	require.Equal(t, "alice@example.com", sender.sent[0].To)
	require.Contains(t, sender.sent[0].Body, "pay rent")
	require.Equal(t, "bob@example.com", sender.sent[1].To)
}

func TestTickSkipsWhenLockHeld(t *testing.T) {
	api := &fakeAPI{}
	sender := &recordingSender{}
	c := memory.New()
	s := newScheduler(api, sender, c)

	// Another replica holds the lock
	held, err := c.SetNX(t.Context(), tasklock.Key("update_expired_todos", nil, nil), "x", time.Minute)
	require.NoError(t, err)
	require.True(t, held)

	s.tick()
	require.Zero(t, api.callCount())
}

func TestTickReleasesLockAfterFailure(t *testing.T) {
	api := &fakeAPI{err: errors.New("api down")}
	sender := &recordingSender{}
	c := memory.New()
	s := newScheduler(api, sender, c)

	s.tick()
	require.Equal(t, 1, api.callCount())

	// Lock was released despite the failure, so the next tick runs again
	s.tick()
	require.Equal(t, 2, api.callCount())
}

func TestMailFailureDoesNotAbortRun(t *testing.T) {
	api := &fakeAPI{expired: []todosdk.ExpiredTodo{
		{Todo: todosdk.Todo{ID: "t1", Title: "a"}, User: todosdk.User{Email: "a@example.com"}},
		{Todo: todosdk.Todo{ID: "t2", Title: "b"}, User: todosdk.User{Email: "b@example.com"}},
	}}
	sender := &recordingSender{err: errors.New("smtp down")}
	s := newScheduler(api, sender, memory.New())

	require.NoError(t, s.expire(t.Context()))
	require.Len(t, sender.sent, 2)
}

func TestStartStop(t *testing.T) {
	api := &fakeAPI{}
	sender := &recordingSender{}
	s := newScheduler(api, sender, memory.New())

	s.Start()
	require.Eventually(t, func() bool { return api.callCount() >= 1 }, time.Second, 10*time.Millisecond)
	s.Stop()
}
