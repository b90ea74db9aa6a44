package http

import (
	"net/http"

	"github.com/aussiebroadwan/todohub/internal/todo/domain"
	"github.com/aussiebroadwan/todohub/pkg/httpx"
	"github.com/aussiebroadwan/todohub/pkg/slogx"
)

// Envelope is the uniform response body. Successful responses carry data,
// failures carry a message and a machine-readable code.
type Envelope struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
	Code    *string `json:"code,omitempty"`
	Data    any     `json:"data,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	httpx.WriteJSON(w, status, Envelope{Success: true, Data: data})
}

// writeError maps err onto the envelope. Anything that is not a domain
// error is reported as a generic 500; the original error is logged, not
// sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	de := domain.AsError(err)
	if de.Status >= http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
	}
	httpx.WriteJSON(w, de.Status, Envelope{
		Success: false,
		Message: &de.Message,
		Code:    &de.Code,
	})
}
