package http

import (
	"time"

	"github.com/aussiebroadwan/todohub/internal/todo/domain"
)

const (
	maxTitleLen       = 50
	maxDescriptionLen = 255
	maxNameLen        = 50
)

type createTodoRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ValidUntil  time.Time `json:"valid_until"`
	TodoListID  string    `json:"todo_list_id"`
}

func (req *createTodoRequest) Validate() error {
	if req.Title == "" || len(req.Title) > maxTitleLen {
		return domain.NewValidationError("Title must be between 1 and 50 characters.")
	}
	if len(req.Description) > maxDescriptionLen {
		return domain.NewValidationError("Description must be at most 255 characters.")
	}
	if req.ValidUntil.IsZero() {
		return domain.NewValidationError("Valid until is required.")
	}
	if req.TodoListID == "" {
		return domain.NewValidationError("Todo list id is required.")
	}
	return nil
}

type updateTodoRequest struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	ValidUntil  *time.Time         `json:"valid_until,omitempty"`
	StatusID    *domain.TodoStatus `json:"status_id,omitempty"`
}

func (req *updateTodoRequest) Validate() error {
	if req.Title != nil && (*req.Title == "" || len(*req.Title) > maxTitleLen) {
		return domain.NewValidationError("Title must be between 1 and 50 characters.")
	}
	if req.Description != nil && len(*req.Description) > maxDescriptionLen {
		return domain.NewValidationError("Description must be at most 255 characters.")
	}
	if req.StatusID != nil && !req.StatusID.Valid() {
		return domain.NewValidationError("Unknown todo status.")
	}
	return nil
}

type createTodoListRequest struct {
	Name string `json:"name"`
}

func (req *createTodoListRequest) Validate() error {
	if req.Name == "" || len(req.Name) > maxNameLen {
		return domain.NewValidationError("Name must be between 1 and 50 characters.")
	}
	return nil
}

type updateTodoListRequest struct {
	Name     *string                `json:"name,omitempty"`
	StatusID *domain.TodoListStatus `json:"status_id,omitempty"`
}

func (req *updateTodoListRequest) Validate() error {
	if req.Name != nil && (*req.Name == "" || len(*req.Name) > maxNameLen) {
		return domain.NewValidationError("Name must be between 1 and 50 characters.")
	}
	if req.StatusID != nil && !req.StatusID.Valid() {
		return domain.NewValidationError("Unknown todo list status.")
	}
	return nil
}
