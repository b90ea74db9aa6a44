package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/todohub/internal/todo/domain"
	"github.com/aussiebroadwan/todohub/internal/todo/service"
)

type TodoListHandler struct {
	TodoLists *service.TodoListService
}

// HandleList godoc
//
//	@Summary		List todo lists
//	@Description	Returns every non-deleted todo list owned by the authenticated user. Requires 'read:todo' scope.
//	@Tags			TodoLists
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	http.Envelope{data=[]domain.TodoList}
//	@Failure		401	{object}	http.Envelope
//	@Failure		403	{object}	http.Envelope
//	@Router			/v1/todo_list [get].
func (h *TodoListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	lists, err := h.TodoLists.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, lists)
}

// HandleGet godoc
//
//	@Summary		Get a todo list
//	@Description	Returns a todo list with its non-deleted todos. Requires 'read:todo' scope.
//	@Tags			TodoLists
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Todo list ID"
//	@Success		200	{object}	http.Envelope{data=domain.TodoList}
//	@Failure		400	{object}	http.Envelope	"Unknown, deleted or foreign todo list"
//	@Failure		401	{object}	http.Envelope
//	@Router			/v1/todo_list/{id} [get].
func (h *TodoListHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.TodoLists.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, list)
}

// HandleCreate godoc
//
//	@Summary		Create a todo list
//	@Description	Creates an empty open todo list. Requires 'write:todo' scope.
//	@Tags			TodoLists
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		http.createTodoListRequest	true	"Todo list payload"
//	@Success		201		{object}	http.Envelope{data=domain.TodoList}
//	@Failure		400		{object}	http.Envelope
//	@Failure		401		{object}	http.Envelope
//	@Router			/v1/todo_list [post].
func (h *TodoListHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req createTodoListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidationError("Malformed request body."))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.TodoLists.Create(r.Context(), userID, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, list)
}

// HandleUpdate godoc
//
//	@Summary		Update a todo list
//	@Description	Partially updates a todo list; absent fields keep their value. Requires 'write:todo' scope.
//	@Tags			TodoLists
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Todo list ID"
//	@Param			request	body		http.updateTodoListRequest	true	"Fields to change"
//	@Success		200		{object}	http.Envelope{data=domain.TodoList}
//	@Failure		400		{object}	http.Envelope
//	@Failure		401		{object}	http.Envelope
//	@Router			/v1/todo_list/{id} [put].
func (h *TodoListHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateTodoListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidationError("Malformed request body."))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.TodoLists.Update(r.Context(), userID, r.PathValue("id"), service.UpdateTodoListInput{
		Name:     req.Name,
		StatusID: req.StatusID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, list)
}

// HandleDelete godoc
//
//	@Summary		Delete a todo list
//	@Description	Soft-deletes a todo list. Deleting an already deleted or unknown list fails. Requires 'write:todo' scope.
//	@Tags			TodoLists
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Todo list ID"
//	@Success		200	{object}	http.Envelope
//	@Failure		400	{object}	http.Envelope	"Unknown, deleted or foreign todo list"
//	@Failure		401	{object}	http.Envelope
//	@Router			/v1/todo_list/{id} [delete].
func (h *TodoListHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.TodoLists.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, nil)
}
