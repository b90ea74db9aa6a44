package todosdk

import (
	"context"
	"net/http"
)

// UpdateExpiredTodos asks the API to expire every overdue open todo and
// returns the affected todos paired with their owners.
func (c *Client) UpdateExpiredTodos(ctx context.Context) ([]ExpiredTodo, error) {
	resp, err := c.doAuthRequest(ctx, http.MethodPut, "/v1/worker/expired", nil)
	if err != nil {
		return nil, err
	}

	var expired []ExpiredTodo
	if err := decodeEnvelope(resp, &expired); err != nil {
		return nil, err
	}

	return expired, nil
}
