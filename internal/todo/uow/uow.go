// Package uow implements the unit of work over a store.Store. A unit of
// work owns the transaction lifecycle for one request or task: the first
// Enter begins a transaction, further Enters open savepoints, and the
// matching Exits commit or roll back scope by scope. After the outermost
// commit succeeds, collected row events are handed to a commit listener.
//
// A UnitOfWork belongs to a single goroutine; construct one per request.
package uow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/todohub/internal/todo/cache"
	"github.com/aussiebroadwan/todohub/internal/todo/store"
)

// ErrNoScope is returned by write operations outside an Enter/Exit pair.
// Reads fall back to the base session; writes never do.
var ErrNoScope = errors.New("uow: no active transaction scope")

type UnitOfWork struct {
	base     store.Store
	cache    cache.Cache
	log      *slog.Logger
	listener CommitListener

	// stack[0] is the top-level transaction, the rest are savepoints.
	// marks[i] is how many events were recorded when stack[i] opened, so
	// a rolled-back scope can discard exactly the events it produced.
	stack  []store.Tx
	marks  []int
	events []Event

	// memoized repo wrappers; they resolve the current session per call
	todos     *todosRepo
	todoLists *todoListsRepo
	users     *usersRepo
}

// New builds a unit of work. listener may be nil when post-commit dispatch
// isn't wanted (worker-internal scopes, tests).
func New(base store.Store, c cache.Cache, log *slog.Logger, listener CommitListener) *UnitOfWork {
	u := &UnitOfWork{
		base:     base,
		cache:    c,
		log:      log,
		listener: listener,
	}
	u.todos = &todosRepo{u: u}
	u.todoLists = &todoListsRepo{u: u}
	u.users = &usersRepo{u: u}
	return u
}

// Todos returns the todo repository bound to the current scope. The
// single-todo user read goes through the cache.
func (u *UnitOfWork) Todos() *todosRepo { return u.todos }

// TodoLists returns the todo list repository bound to the current scope.
func (u *UnitOfWork) TodoLists() *todoListsRepo { return u.todoLists }

// Users returns the user repository bound to the current scope.
func (u *UnitOfWork) Users() *usersRepo { return u.users }

// InScope reports whether a transaction scope is active.
func (u *UnitOfWork) InScope() bool { return len(u.stack) > 0 }

// Depth returns the current nesting depth.
func (u *UnitOfWork) Depth() int { return len(u.stack) }

// session returns the store the repos should read from right now.
func (u *UnitOfWork) session() store.Store {
	if n := len(u.stack); n > 0 {
		return u.stack[n-1]
	}
	return u.base
}

// Enter opens a scope: a transaction at the top level, a savepoint inside
// an existing one.
func (u *UnitOfWork) Enter(ctx context.Context) error {
	if len(u.stack) == 0 {
		tx, err := u.base.Tx(ctx)
		if err != nil {
			return fmt.Errorf("uow: begin: %w", err)
		}
		u.stack = append(u.stack, tx)
		u.marks = append(u.marks, len(u.events))
		return nil
	}

	sp, err := u.stack[len(u.stack)-1].Savepoint(ctx)
	if err != nil {
		return fmt.Errorf("uow: savepoint: %w", err)
	}
	u.stack = append(u.stack, sp)
	u.marks = append(u.marks, len(u.events))
	return nil
}

// Exit closes the innermost scope. failed=false commits (releases the
// savepoint for nested scopes); failed=true rolls back. A commit failure
// rolls the scope back and returns a wrapped storage error. A rolled-back
// scope discards the events it recorded, at any depth, so a later outer
// commit never dispatches rows the database threw away. Closing the
// outermost scope successfully dispatches the collected events.
func (u *UnitOfWork) Exit(ctx context.Context, failed bool) error {
	n := len(u.stack)
	if n == 0 {
		return ErrNoScope
	}

	tx := u.stack[n-1]
	u.stack = u.stack[:n-1]
	mark := u.marks[n-1]
	u.marks = u.marks[:n-1]
	outermost := n == 1

	if failed {
		u.events = u.events[:mark]
		if err := tx.Rollback(); err != nil {
			return fmt.Errorf("uow: rollback: %w", err)
		}
		return nil
	}

	if err := tx.Commit(); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			u.log.ErrorContext(ctx, "rollback after failed commit",
				slog.Any("error", rbErr))
		}
		u.events = u.events[:mark]
		return fmt.Errorf("uow: commit: %w", err)
	}

	if outermost {
		u.dispatch(ctx)
	}
	return nil
}

// Do runs fn inside a paired Enter/Exit. The scope rolls back when fn
// returns an error or panics; panics are re-raised after the rollback.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if err := u.Enter(ctx); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = u.Exit(ctx, true)
			panic(r)
		}
	}()

	if fnErr := fn(ctx); fnErr != nil {
		if exitErr := u.Exit(ctx, true); exitErr != nil {
			u.log.ErrorContext(ctx, "rollback failed",
				slog.Any("error", exitErr))
		}
		return fnErr
	}

	return u.Exit(ctx, false)
}

// record buffers a row event for post-commit dispatch.
func (u *UnitOfWork) record(e Event) {
	u.events = append(u.events, e)
}

// dispatch hands the buffered events to the listener, synchronously, after
// the outermost commit. Runs on an empty stack so the listener sees
// committed state when it reads back through the base store.
func (u *UnitOfWork) dispatch(ctx context.Context) {
	events := u.events
	u.events = nil

	if u.listener == nil || len(events) == 0 {
		return
	}
	u.listener.AfterCommit(ctx, events)
}
