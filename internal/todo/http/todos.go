package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/todohub/internal/todo/domain"
	"github.com/aussiebroadwan/todohub/internal/todo/service"
)

type TodoHandler struct {
	Todos *service.TodoService
}

// HandleList godoc
//
//	@Summary		List todos
//	@Description	Returns every non-deleted todo owned by the authenticated user. Requires 'read:todo' scope.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	http.Envelope{data=[]domain.Todo}
//	@Failure		401	{object}	http.Envelope
//	@Failure		403	{object}	http.Envelope
//	@Router			/v1/todo [get].
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	todos, err := h.Todos.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, todos)
}

// HandleGet godoc
//
//	@Summary		Get a todo
//	@Description	Returns a single todo by id. Requires 'read:todo' scope.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Todo ID"
//	@Success		200	{object}	http.Envelope{data=domain.Todo}
//	@Failure		400	{object}	http.Envelope	"Unknown, deleted or foreign todo"
//	@Failure		401	{object}	http.Envelope
//	@Router			/v1/todo/{id} [get].
func (h *TodoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	todo, err := h.Todos.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, todo)
}

// HandleCreate godoc
//
//	@Summary		Create a todo
//	@Description	Creates a todo inside one of the caller's todo lists. Requires 'write:todo' scope.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		http.createTodoRequest	true	"Todo payload"
//	@Success		201		{object}	http.Envelope{data=domain.Todo}
//	@Failure		400		{object}	http.Envelope	"Validation failure or unknown todo list"
//	@Failure		401		{object}	http.Envelope
//	@Router			/v1/todo [post].
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidationError("Malformed request body."))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	todo, err := h.Todos.Create(r.Context(), userID, service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		ValidUntil:  req.ValidUntil,
		TodoListID:  req.TodoListID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, todo)
}

// HandleUpdate godoc
//
//	@Summary		Update a todo
//	@Description	Partially updates a todo; absent fields keep their value. Requires 'write:todo' scope.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Todo ID"
//	@Param			request	body		http.updateTodoRequest	true	"Fields to change"
//	@Success		200		{object}	http.Envelope{data=domain.Todo}
//	@Failure		400		{object}	http.Envelope
//	@Failure		401		{object}	http.Envelope
//	@Router			/v1/todo/{id} [put].
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidationError("Malformed request body."))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	todo, err := h.Todos.Update(r.Context(), userID, r.PathValue("id"), service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		ValidUntil:  req.ValidUntil,
		StatusID:    req.StatusID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, todo)
}

// HandleDelete godoc
//
//	@Summary		Delete a todo
//	@Description	Soft-deletes a todo. Deleting an already deleted or unknown todo fails. Requires 'write:todo' scope.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Todo ID"
//	@Success		200	{object}	http.Envelope
//	@Failure		400	{object}	http.Envelope	"Unknown, deleted or foreign todo"
//	@Failure		401	{object}	http.Envelope
//	@Router			/v1/todo/{id} [delete].
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Todos.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, nil)
}
