package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/todohub/internal/todo/cache"
	"github.com/aussiebroadwan/todohub/internal/todo/cache/drivers/memory"
	"github.com/aussiebroadwan/todohub/internal/todo/domain"
	"github.com/aussiebroadwan/todohub/internal/todo/service"
	"github.com/aussiebroadwan/todohub/internal/todo/store/drivers/sqlite"
	"github.com/aussiebroadwan/todohub/internal/todo/uow"
	"github.com/aussiebroadwan/todohub/pkg/idx"
)

type env struct {
	store *sqlite.Store
	cache *memory.Cache

	todos *service.TodoService
	lists *service.TodoListService
	users *service.UserService
	work  *service.WorkerService

	idp *fakeIdP
}

type fakeIdP struct {
	email string
	err   error
	calls int
}

func (f *fakeIdP) UserEmail(context.Context, string) (string, error) {
	f.calls++
	return f.email, f.err
}

func newEnv(t *testing.T) *env {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	c := memory.New()
	log := slog.New(slog.DiscardHandler)

	factory := &uow.Factory{
		Store:  s,
		Cache:  c,
		Logger: log,
		Listener: &service.CacheSyncListener{
			Store:  s,
			Cache:  c,
			Logger: log,
		},
	}

	idp := &fakeIdP{email: "alice@example.com"}

	return &env{
		store: s,
		cache: c,
		todos: &service.TodoService{UoW: factory},
		lists: &service.TodoListService{UoW: factory},
		users: &service.UserService{UoW: factory, IdP: idp, Logger: log},
		work:  &service.WorkerService{UoW: factory, Logger: log},
		idp:   idp,
	}
}

func (e *env) seedUser(t *testing.T, ctx context.Context, email string) domain.User {
	t.Helper()
	u := domain.User{ID: idx.New().String(), SubID: "idp|" + email, Email: email, StatusID: domain.UserEnabled}
	require.NoError(t, e.store.Users().Insert(ctx, &u))
	return u
}

func TestTodoLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.seedUser(t, ctx, "alice@example.com")

	list, err := e.lists.Create(ctx, u.ID, "Groceries")
	require.NoError(t, err)

	due := time.Now().UTC().Add(7 * 24 * time.Hour)
	td, err := e.todos.Create(ctx, u.ID, service.CreateTodoInput{
		Title:      "Buy milk",
		ValidUntil: due,
		TodoListID: list.ID,
	})
	require.NoError(t, err)
	require.Equal(t, domain.TodoOpen, td.StatusID)

	got, err := e.todos.Get(ctx, u.ID, td.ID)
	require.NoError(t, err)
	require.Equal(t, "Buy milk", got.Title)
	require.Equal(t, domain.TodoOpen, got.StatusID)

	require.NoError(t, e.todos.Delete(ctx, u.ID, td.ID))

	// Second delete fails: the row is already gone from the user's view
	err = e.todos.Delete(ctx, u.ID, td.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTodo)

	_, err = e.todos.Get(ctx, u.ID, td.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTodo)
}

func TestTodoCreateRejectsForeignList(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	alice := e.seedUser(t, ctx, "alice@example.com")
	bob := e.seedUser(t, ctx, "bob@example.com")

	list, err := e.lists.Create(ctx, alice.ID, "Groceries")
	require.NoError(t, err)

	_, err = e.todos.Create(ctx, bob.ID, service.CreateTodoInput{
		Title:      "sneaky",
		ValidUntil: time.Now().Add(time.Hour),
		TodoListID: list.ID,
	})
	require.ErrorIs(t, err, domain.ErrInvalidTodoList)

	// The rolled-back insert must not exist for anyone
	todos, err := e.todos.List(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, todos)
}

func TestTodoUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.seedUser(t, ctx, "alice@example.com")

	list, err := e.lists.Create(ctx, u.ID, "Groceries")
	require.NoError(t, err)
	td, err := e.todos.Create(ctx, u.ID, service.CreateTodoInput{
		Title:      "Buy milk",
		ValidUntil: time.Now().UTC().Add(time.Hour),
		TodoListID: list.ID,
	})
	require.NoError(t, err)

	title := "Buy oat milk"
	closed := domain.TodoClosed
	updated, err := e.todos.Update(ctx, u.ID, td.ID, service.UpdateTodoInput{
		Title:    &title,
		StatusID: &closed,
	})
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", updated.Title)
	require.Equal(t, domain.TodoClosed, updated.StatusID)

	_, err = e.todos.Update(ctx, u.ID, idx.New().String(), service.UpdateTodoInput{Title: &title})
	require.ErrorIs(t, err, domain.ErrInvalidTodo)
}

func TestTodoListGetEagerLoadsTodos(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.seedUser(t, ctx, "alice@example.com")

	list, err := e.lists.Create(ctx, u.ID, "Groceries")
	require.NoError(t, err)

	_, err = e.todos.Create(ctx, u.ID, service.CreateTodoInput{
		Title: "Buy milk", ValidUntil: time.Now().Add(time.Hour), TodoListID: list.ID,
	})
	require.NoError(t, err)

	got, err := e.lists.Get(ctx, u.ID, list.ID)
	require.NoError(t, err)
	require.Len(t, got.Todos, 1)
	require.Equal(t, "Buy milk", got.Todos[0].Title)
}

func TestTodoListDeleteTwice(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.seedUser(t, ctx, "alice@example.com")

	list, err := e.lists.Create(ctx, u.ID, "Groceries")
	require.NoError(t, err)

	require.NoError(t, e.lists.Delete(ctx, u.ID, list.ID))
	require.ErrorIs(t, e.lists.Delete(ctx, u.ID, list.ID), domain.ErrInvalidTodoList)
}

func TestCommitRefreshesTodoCacheAndDropsListSet(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.seedUser(t, ctx, "alice@example.com")

	list, err := e.lists.Create(ctx, u.ID, "Groceries")
	require.NoError(t, err)

	// Populate the per-user list set
	_, err = e.lists.List(ctx, u.ID)
	require.NoError(t, err)
	members, err := e.cache.SMembers(ctx, cache.TodoListsKey(u.ID))
	require.NoError(t, err)
	require.NotEmpty(t, members)

	td, err := e.todos.Create(ctx, u.ID, service.CreateTodoInput{
		Title: "Buy milk", ValidUntil: time.Now().Add(time.Hour), TodoListID: list.ID,
	})
	require.NoError(t, err)

	// The commit refreshed the todo entry and dropped the list set
	_, err = e.cache.Get(ctx, cache.TodoKey(td.ID))
	require.NoError(t, err)

	members, err = e.cache.SMembers(ctx, cache.TodoListsKey(u.ID))
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestRolledBackWriteLeavesCacheAlone(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.seedUser(t, ctx, "alice@example.com")

	_, err := e.lists.Create(ctx, u.ID, "Groceries")
	require.NoError(t, err)

	_, err = e.lists.List(ctx, u.ID)
	require.NoError(t, err)

	// Failing create: foreign list triggers rollback before commit
	_, err = e.todos.Create(ctx, u.ID, service.CreateTodoInput{
		Title: "x", ValidUntil: time.Now().Add(time.Hour), TodoListID: idx.New().String(),
	})
	require.Error(t, err)

	members, err := e.cache.SMembers(ctx, cache.TodoListsKey(u.ID))
	require.NoError(t, err)
	require.NotEmpty(t, members, "rollback must not invalidate the cache")
}

func TestResolveKnownSubject(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.seedUser(t, ctx, "alice@example.com")

	got, err := e.users.Resolve(ctx, u.SubID, "token")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Zero(t, e.idp.calls, "known subjects must not hit the userinfo endpoint")
}

func TestResolveCreatesUserOnFirstContact(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	e.idp.email = "fresh@example.com"

	got, err := e.users.Resolve(ctx, "idp|fresh", "token")
	require.NoError(t, err)
	require.Equal(t, "fresh@example.com", got.Email)
	require.Equal(t, "idp|fresh", got.SubID)
	require.Equal(t, domain.UserEnabled, got.StatusID)
	require.Equal(t, 1, e.idp.calls)

	// Resolving again finds the stored user without another userinfo call
	again, err := e.users.Resolve(ctx, "idp|fresh", "token")
	require.NoError(t, err)
	require.Equal(t, got.ID, again.ID)
	require.Equal(t, 1, e.idp.calls)
}

func TestResolveRebindsSubjectByEmail(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.seedUser(t, ctx, "alice@example.com")
	e.idp.email = "alice@example.com"

	got, err := e.users.Resolve(ctx, "idp|reissued", "token")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID, "same account, new subject")
	require.Equal(t, "idp|reissued", got.SubID)

	// The old subject no longer resolves to anything by sub lookup
	row, err := e.store.Users().GetBySubID(ctx, u.SubID)
	require.NoError(t, err)
	require.Nil(t, row)
}

func TestResolveRejectsDisabledUser(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()

	u := domain.User{ID: idx.New().String(), SubID: "idp|off", Email: "off@example.com", StatusID: domain.UserDisabled}
	require.NoError(t, e.store.Users().Insert(ctx, &u))

	_, err := e.users.Resolve(ctx, "idp|off", "token")
	require.ErrorIs(t, err, domain.ErrDeactivatedUser)
}

func TestResolveFailsWhenUserinfoFails(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	e.idp.err = errors.New("idp down")

	_, err := e.users.Resolve(ctx, "idp|unknown", "token")
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	// Nothing was persisted
	row, err := e.store.Users().GetBySubID(ctx, "idp|unknown")
	require.NoError(t, err)
	require.Nil(t, row)
}

func TestWorkerUpdateExpiredTodos(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.seedUser(t, ctx, "alice@example.com")

	list, err := e.lists.Create(ctx, u.ID, "Groceries")
	require.NoError(t, err)

	// Create then backdate a todo
	td, err := e.todos.Create(ctx, u.ID, service.CreateTodoInput{
		Title: "pay rent", ValidUntil: time.Now().UTC().Add(time.Hour), TodoListID: list.ID,
	})
	require.NoError(t, err)

	row, err := e.store.Todos().Get(ctx, td.ID)
	require.NoError(t, err)
	row.ValidUntil = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, e.store.Todos().Update(ctx, row))

	pairs, err := e.work.UpdateExpiredTodos(ctx)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	require.Equal(t, td.ID, pairs[0].Todo.ID)
	require.Equal(t, domain.TodoExpired, pairs[0].Todo.StatusID)
	require.Equal(t, "alice@example.com", pairs[0].User.Email)

	// The expiry commit refreshed the cached copy
	b, err := e.cache.Get(ctx, cache.TodoKey(td.ID))
	require.NoError(t, err)
	require.Contains(t, string(b), `"status_id":3`)

	// Immediate rerun reports nothing
	pairs, err = e.work.UpdateExpiredTodos(ctx)
	require.NoError(t, err)
	require.Empty(t, pairs)
}
