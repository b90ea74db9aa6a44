package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/todohub/internal/todo/domain"
	"github.com/aussiebroadwan/todohub/internal/todo/uow"
	"github.com/aussiebroadwan/todohub/pkg/idx"
)

// TodoService implements the user-facing todo operations. Every operation
// is scoped to the calling user; rows the user doesn't own read as absent.
type TodoService struct {
	UoW *uow.Factory
}

// CreateTodoInput carries the validated fields for a new todo.
type CreateTodoInput struct {
	Title       string
	Description string
	ValidUntil  time.Time
	TodoListID  string
}

// UpdateTodoInput carries the validated fields for a todo update. Nil
// pointers leave the stored value untouched.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	ValidUntil  *time.Time
	StatusID    *domain.TodoStatus
}

// List returns the user's todos, newest ids last, excluding deleted ones.
func (s *TodoService) List(ctx context.Context, userID string) ([]domain.Todo, error) {
	return s.UoW.New().Todos().UserList(ctx, userID)
}

// Get returns the user's todo by id.
func (s *TodoService) Get(ctx context.Context, userID, id string) (*domain.Todo, error) {
	t, err := s.UoW.New().Todos().UserGet(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrInvalidTodo
	}
	return t, nil
}

// Create adds a todo to one of the user's lists.
func (s *TodoService) Create(ctx context.Context, userID string, in CreateTodoInput) (*domain.Todo, error) {
	unit := s.UoW.New()

	t := &domain.Todo{
		ID:          idx.New().String(),
		Title:       in.Title,
		Description: in.Description,
		ValidUntil:  in.ValidUntil,
		UserID:      userID,
		TodoListID:  in.TodoListID,
		StatusID:    domain.TodoOpen,
	}

	err := unit.Do(ctx, func(ctx context.Context) error {
		// The target list must exist, be owned and not deleted
		list, err := unit.TodoLists().UserGet(ctx, userID, in.TodoListID)
		if err != nil {
			return err
		}
		if list == nil {
			return domain.ErrInvalidTodoList
		}
		return unit.Todos().Insert(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Update applies the provided changes to the user's todo.
func (s *TodoService) Update(ctx context.Context, userID, id string, in UpdateTodoInput) (*domain.Todo, error) {
	unit := s.UoW.New()

	var updated *domain.Todo
	err := unit.Do(ctx, func(ctx context.Context) error {
		t, err := unit.Todos().UserGet(ctx, userID, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrInvalidTodo
		}

		if in.Title != nil {
			t.Title = *in.Title
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		if in.ValidUntil != nil {
			t.ValidUntil = *in.ValidUntil
		}
		if in.StatusID != nil {
			t.StatusID = *in.StatusID
		}

		if err := unit.Todos().Update(ctx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes the user's todo. Deleting an already deleted (or
// absent, or foreign) todo fails with the same invalid-todo error, so the
// API leaks nothing about other users' rows.
func (s *TodoService) Delete(ctx context.Context, userID, id string) error {
	unit := s.UoW.New()

	return unit.Do(ctx, func(ctx context.Context) error {
		ok, err := unit.Todos().UserUpdateStatus(ctx, userID, id, domain.TodoDeleted)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidTodo
		}
		return nil
	})
}
