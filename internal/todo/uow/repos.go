package uow

import (
	"context"
	"time"

	"github.com/aussiebroadwan/todohub/internal/todo/domain"
	"github.com/aussiebroadwan/todohub/internal/todo/store"
)

// The repo wrappers bind the store repositories to whatever session the
// unit of work currently holds. Reads work in or out of a scope; writes
// demand one, so nothing mutating ever runs outside a transaction. Writes
// to todos and todo lists also buffer the events the commit listener needs.

type todosRepo struct {
	u *UnitOfWork
}

// current resolves the todo repository for the present session, with the
// cache read-through layered on when a cache is configured.
func (r *todosRepo) current() store.Todos {
	base := r.u.session().Todos()
	if r.u.cache == nil {
		return base
	}
	return store.NewCachedTodos(base, r.u.cache, r.u.log)
}

func (r *todosRepo) Get(ctx context.Context, id string) (*domain.Todo, error) {
	return r.current().Get(ctx, id)
}

func (r *todosRepo) GetMany(ctx context.Context, ids []string) ([]domain.Todo, error) {
	return r.current().GetMany(ctx, ids)
}

func (r *todosRepo) All(ctx context.Context) ([]domain.Todo, error) {
	return r.current().All(ctx)
}

func (r *todosRepo) UserList(ctx context.Context, userID string) ([]domain.Todo, error) {
	return r.current().UserList(ctx, userID)
}

func (r *todosRepo) UserGet(ctx context.Context, userID, id string) (*domain.Todo, error) {
	return r.current().UserGet(ctx, userID, id)
}

func (r *todosRepo) Insert(ctx context.Context, t *domain.Todo) error {
	if !r.u.InScope() {
		return ErrNoScope
	}
	if err := r.current().Insert(ctx, t); err != nil {
		return err
	}
	r.u.record(Event{Op: OpInsert, Entity: EntityTodo, ID: t.ID, UserID: t.UserID})
	return nil
}

func (r *todosRepo) Update(ctx context.Context, t *domain.Todo) error {
	if !r.u.InScope() {
		return ErrNoScope
	}
	if err := r.current().Update(ctx, t); err != nil {
		return err
	}
	r.u.record(Event{Op: OpUpdate, Entity: EntityTodo, ID: t.ID, UserID: t.UserID})
	return nil
}

func (r *todosRepo) Delete(ctx context.Context, id string) error {
	if !r.u.InScope() {
		return ErrNoScope
	}
	return r.current().Delete(ctx, id)
}

func (r *todosRepo) DeleteMany(ctx context.Context, ids []string) error {
	if !r.u.InScope() {
		return ErrNoScope
	}
	return r.current().DeleteMany(ctx, ids)
}

func (r *todosRepo) UserUpdateStatus(ctx context.Context, userID, id string, status domain.TodoStatus) (bool, error) {
	if !r.u.InScope() {
		return false, ErrNoScope
	}
	ok, err := r.current().UserUpdateStatus(ctx, userID, id, status)
	if err != nil || !ok {
		return ok, err
	}
	r.u.record(Event{Op: OpUpdate, Entity: EntityTodo, ID: id, UserID: userID})
	return true, nil
}

func (r *todosRepo) ExpireOverdue(ctx context.Context, now time.Time) ([]store.TodoUser, error) {
	if !r.u.InScope() {
		return nil, ErrNoScope
	}
	pairs, err := r.current().ExpireOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		r.u.record(Event{Op: OpUpdate, Entity: EntityTodo, ID: p.Todo.ID, UserID: p.Todo.UserID})
	}
	return pairs, nil
}

type todoListsRepo struct {
	u *UnitOfWork
}

func (r *todoListsRepo) current() store.TodoLists {
	base := r.u.session().TodoLists()
	if r.u.cache == nil {
		return base
	}
	return store.NewCachedTodoLists(base, r.u.cache, r.u.log)
}

func (r *todoListsRepo) Get(ctx context.Context, id string) (*domain.TodoList, error) {
	return r.current().Get(ctx, id)
}

func (r *todoListsRepo) GetMany(ctx context.Context, ids []string) ([]domain.TodoList, error) {
	return r.current().GetMany(ctx, ids)
}

func (r *todoListsRepo) All(ctx context.Context) ([]domain.TodoList, error) {
	return r.current().All(ctx)
}

func (r *todoListsRepo) UserList(ctx context.Context, userID string) ([]domain.TodoList, error) {
	return r.current().UserList(ctx, userID)
}

func (r *todoListsRepo) UserGet(ctx context.Context, userID, id string) (*domain.TodoList, error) {
	return r.current().UserGet(ctx, userID, id)
}

func (r *todoListsRepo) UserGetWithTodos(ctx context.Context, userID, id string) (*domain.TodoList, error) {
	return r.current().UserGetWithTodos(ctx, userID, id)
}

func (r *todoListsRepo) Insert(ctx context.Context, l *domain.TodoList) error {
	if !r.u.InScope() {
		return ErrNoScope
	}
	if err := r.current().Insert(ctx, l); err != nil {
		return err
	}
	r.u.record(Event{Op: OpInsert, Entity: EntityTodoList, ID: l.ID, UserID: l.UserID})
	return nil
}

func (r *todoListsRepo) Update(ctx context.Context, l *domain.TodoList) error {
	if !r.u.InScope() {
		return ErrNoScope
	}
	if err := r.current().Update(ctx, l); err != nil {
		return err
	}
	r.u.record(Event{Op: OpUpdate, Entity: EntityTodoList, ID: l.ID, UserID: l.UserID})
	return nil
}

func (r *todoListsRepo) Delete(ctx context.Context, id string) error {
	if !r.u.InScope() {
		return ErrNoScope
	}
	return r.current().Delete(ctx, id)
}

func (r *todoListsRepo) DeleteMany(ctx context.Context, ids []string) error {
	if !r.u.InScope() {
		return ErrNoScope
	}
	return r.current().DeleteMany(ctx, ids)
}

func (r *todoListsRepo) UserUpdateStatus(ctx context.Context, userID, id string, status domain.TodoListStatus) (bool, error) {
	if !r.u.InScope() {
		return false, ErrNoScope
	}
	ok, err := r.current().UserUpdateStatus(ctx, userID, id, status)
	if err != nil || !ok {
		return ok, err
	}
	r.u.record(Event{Op: OpUpdate, Entity: EntityTodoList, ID: id, UserID: userID})
	return true, nil
}

type usersRepo struct {
	u *UnitOfWork
}

func (r *usersRepo) current() store.Users {
	return r.u.session().Users()
}

func (r *usersRepo) Get(ctx context.Context, id string) (*domain.User, error) {
	return r.current().Get(ctx, id)
}

func (r *usersRepo) GetBySubID(ctx context.Context, subID string) (*domain.User, error) {
	return r.current().GetBySubID(ctx, subID)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.current().GetByEmail(ctx, email)
}

func (r *usersRepo) Insert(ctx context.Context, u *domain.User) error {
	if !r.u.InScope() {
		return ErrNoScope
	}
	return r.current().Insert(ctx, u)
}

func (r *usersRepo) Update(ctx context.Context, u *domain.User) error {
	if !r.u.InScope() {
		return ErrNoScope
	}
	return r.current().Update(ctx, u)
}
