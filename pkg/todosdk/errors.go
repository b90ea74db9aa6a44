package todosdk

import "fmt"

// AuthError is returned when the identity provider rejects the
// client-credentials grant.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("todosdk: token request failed with status %d: %s", e.Status, e.Body)
}

// APIError is returned when the API responds with a non-success envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("todosdk: api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("todosdk: api error %d: %s", e.Status, e.Message)
}
