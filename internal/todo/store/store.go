package store

import (
	"context"
	"time"

	"github.com/aussiebroadwan/todohub/internal/todo/domain"
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable. Lookup methods return nil without error when the row is absent;
// callers decide whether absence is an error.
type Store interface {
	Todos() Todos
	TodoLists() TodoLists
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	// Transaction lifecycle normally belongs to the unit of work; only
	// reach for this directly in tests and tooling.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback and savepoint nesting.
type Tx interface {
	Store
	Commit() error
	Rollback() error

	// Savepoint opens a nested scope inside this transaction. Commit on
	// the returned Tx releases the savepoint; Rollback rewinds to it. The
	// enclosing transaction stays open either way.
	Savepoint(ctx context.Context) (Tx, error)
}

// TodoUser pairs a todo with its owning user, for worker notification.
type TodoUser struct {
	Todo domain.Todo `json:"todo"`
	User domain.User `json:"user"`
}

type Todos interface {
	// Get returns a todo by id, nil when absent.
	Get(ctx context.Context, id string) (*domain.Todo, error)

	// GetMany returns the todos matching ids. Missing ids are skipped.
	GetMany(ctx context.Context, ids []string) ([]domain.Todo, error)

	// All returns every todo. Worker/admin surface, never user-facing.
	All(ctx context.Context) ([]domain.Todo, error)

	// Insert writes a new todo.
	Insert(ctx context.Context, t *domain.Todo) error

	// Update persists the full row and bumps modified_date. Upsert
	// semantics; an absent id is inserted.
	Update(ctx context.Context, t *domain.Todo) error

	// Delete physically removes a row. API operations soft-delete via
	// UserUpdateStatus instead; this is a maintenance primitive.
	Delete(ctx context.Context, id string) error

	// DeleteMany physically removes the rows matching ids.
	DeleteMany(ctx context.Context, ids []string) error

	// UserList returns the user's todos, excluding soft-deleted ones.
	UserList(ctx context.Context, userID string) ([]domain.Todo, error)

	// UserGet returns the user's todo by id, nil when absent, not owned
	// or soft-deleted.
	UserGet(ctx context.Context, userID, id string) (*domain.Todo, error)

	// UserUpdateStatus conditionally moves the user's todo to status.
	// Returns false without error when the todo is absent, not owned or
	// already at the target status.
	UserUpdateStatus(ctx context.Context, userID, id string, status domain.TodoStatus) (bool, error)

	// ExpireOverdue moves every open todo whose valid_until has passed to
	// expired and returns the affected todos joined with their owners.
	// Running it twice over the same data returns the set once; the
	// second call finds nothing open and overdue.
	ExpireOverdue(ctx context.Context, now time.Time) ([]TodoUser, error)
}

type TodoLists interface {
	Get(ctx context.Context, id string) (*domain.TodoList, error)
	GetMany(ctx context.Context, ids []string) ([]domain.TodoList, error)
	All(ctx context.Context) ([]domain.TodoList, error)
	Insert(ctx context.Context, l *domain.TodoList) error
	Update(ctx context.Context, l *domain.TodoList) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error

	// UserList returns the user's lists, excluding soft-deleted ones.
	UserList(ctx context.Context, userID string) ([]domain.TodoList, error)

	// UserGet returns the user's list by id, nil when absent, not owned
	// or soft-deleted.
	UserGet(ctx context.Context, userID, id string) (*domain.TodoList, error)

	// UserGetWithTodos eager-loads the list's non-deleted todos in one
	// joined query.
	UserGetWithTodos(ctx context.Context, userID, id string) (*domain.TodoList, error)

	// UserUpdateStatus has the same conditional semantics as on todos.
	UserUpdateStatus(ctx context.Context, userID, id string, status domain.TodoListStatus) (bool, error)
}

type Users interface {
	// Get returns a user by id, nil when absent.
	Get(ctx context.Context, id string) (*domain.User, error)

	// GetBySubID looks a user up by identity provider subject.
	GetBySubID(ctx context.Context, subID string) (*domain.User, error)

	// GetByEmail looks a user up by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Insert writes a new user.
	Insert(ctx context.Context, u *domain.User) error

	// Update persists the full row and bumps modified_date. Covers both
	// status flips and sub_id rebinds after provider re-issuance.
	Update(ctx context.Context, u *domain.User) error
}
