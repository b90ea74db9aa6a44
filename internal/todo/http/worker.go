package http

import (
	"net/http"

	"github.com/aussiebroadwan/todohub/internal/todo/service"
)

type WorkerHandler struct {
	Worker *service.WorkerService
}

// HandleUpdateExpired godoc
//
//	@Summary		Expire overdue todos
//	@Description	Marks every open todo past its due date as expired and returns the affected todos with their owners. Idempotent. Requires 'worker' scope.
//	@Tags			Worker
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	http.Envelope{data=[]store.TodoUser}
//	@Failure		401	{object}	http.Envelope
//	@Failure		403	{object}	http.Envelope
//	@Router			/v1/worker/expired [put].
func (h *WorkerHandler) HandleUpdateExpired(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.Worker.UpdateExpiredTodos(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, pairs)
}
