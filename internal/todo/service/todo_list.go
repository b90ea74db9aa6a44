package service

import (
	"context"

	"github.com/aussiebroadwan/todohub/internal/todo/domain"
	"github.com/aussiebroadwan/todohub/internal/todo/uow"
	"github.com/aussiebroadwan/todohub/pkg/idx"
)

// TodoListService implements the user-facing todo list operations.
type TodoListService struct {
	UoW *uow.Factory
}

// UpdateTodoListInput carries the validated fields for a list update.
type UpdateTodoListInput struct {
	Name     *string
	StatusID *domain.TodoListStatus
}

// List returns the user's lists, excluding deleted ones. Served from the
// per-user cache set when populated.
func (s *TodoListService) List(ctx context.Context, userID string) ([]domain.TodoList, error) {
	return s.UoW.New().TodoLists().UserList(ctx, userID)
}

// Get returns the user's list with its non-deleted todos eager-loaded.
func (s *TodoListService) Get(ctx context.Context, userID, id string) (*domain.TodoList, error) {
	l, err := s.UoW.New().TodoLists().UserGetWithTodos(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrInvalidTodoList
	}
	return l, nil
}

// Create opens a new list for the user.
func (s *TodoListService) Create(ctx context.Context, userID, name string) (*domain.TodoList, error) {
	unit := s.UoW.New()

	l := &domain.TodoList{
		ID:       idx.New().String(),
		Name:     name,
		UserID:   userID,
		StatusID: domain.TodoListOpen,
	}

	err := unit.Do(ctx, func(ctx context.Context) error {
		return unit.TodoLists().Insert(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Update applies the provided changes to the user's list.
func (s *TodoListService) Update(ctx context.Context, userID, id string, in UpdateTodoListInput) (*domain.TodoList, error) {
	unit := s.UoW.New()

	var updated *domain.TodoList
	err := unit.Do(ctx, func(ctx context.Context) error {
		l, err := unit.TodoLists().UserGet(ctx, userID, id)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrInvalidTodoList
		}

		if in.Name != nil {
			l.Name = *in.Name
		}
		if in.StatusID != nil {
			l.StatusID = *in.StatusID
		}

		if err := unit.TodoLists().Update(ctx, l); err != nil {
			return err
		}
		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes the user's list. Its todos stay untouched.
func (s *TodoListService) Delete(ctx context.Context, userID, id string) error {
	unit := s.UoW.New()

	return unit.Do(ctx, func(ctx context.Context) error {
		ok, err := unit.TodoLists().UserUpdateStatus(ctx, userID, id, domain.TodoListDeleted)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidTodoList
		}
		return nil
	})
}
