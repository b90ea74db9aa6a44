package todosdk

import (
	"encoding/json"
	"time"
)

// tokenRequest is the client-credentials grant body sent to the provider.
type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Audience     string `json:"audience,omitempty"`
}

// tokenResponse is the provider's token endpoint response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// envelope is the API's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message *string         `json:"message"`
	Code    *string         `json:"code"`
	Data    json.RawMessage `json:"data"`
}

// Todo mirrors the API's todo representation.
type Todo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ValidUntil   time.Time `json:"valid_until"`
	UserID       string    `json:"user_id"`
	TodoListID   string    `json:"todo_list_id"`
	StatusID     int       `json:"status_id"`
	CreatedDate  time.Time `json:"created_date"`
	ModifiedDate time.Time `json:"modified_date"`
}

// User mirrors the API's user representation.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	StatusID int    `json:"status_id"`
}

// ExpiredTodo pairs a newly expired todo with its owner, so the worker can
// notify the right person.
type ExpiredTodo struct {
	Todo Todo `json:"todo"`
	User User `json:"user"`
}
