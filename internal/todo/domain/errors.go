package domain

import (
	"errors"
	"net/http"
)

// Error is a user-facing domain error. It carries the exact message and
// machine code serialized at the HTTP boundary, plus the status class.
// Internal detail never rides on one of these; wrap it separately and log it.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is match two domain errors by code, so wrapped instances
// still compare against the package sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrInvalidTodo      = &Error{Code: "invalid_todo", Message: "Invalid todo.", Status: http.StatusBadRequest}
	ErrInvalidTodoList  = &Error{Code: "invalid_todo_list", Message: "Invalid todo list.", Status: http.StatusBadRequest}
	ErrInvalidToken     = &Error{Code: "invalid_token", Message: "Invalid token.", Status: http.StatusUnauthorized}
	ErrDeactivatedUser  = &Error{Code: "deactivated_user", Message: "Deactivated user.", Status: http.StatusUnauthorized}
	ErrUserNotFound     = &Error{Code: "user_not_found", Message: "User not found.", Status: http.StatusUnauthorized}
	ErrPermissionDenied = &Error{Code: "permission_denied", Message: "Permission denied.", Status: http.StatusForbidden}

	// ErrInternal is the generic 500. The real cause is logged server-side
	// and never leaked into the message.
	ErrInternal = &Error{Code: "internal_error", Message: "Something went wrong.", Status: http.StatusInternalServerError}
)

// NewValidationError builds a 400 for malformed or out-of-range input.
func NewValidationError(message string) *Error {
	return &Error{Code: "validation_error", Message: message, Status: http.StatusBadRequest}
}

// AsError extracts the domain error from err, falling back to ErrInternal
// for anything unclassified.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return ErrInternal
}
