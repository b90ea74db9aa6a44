package domain

import "time"

// Todo is a single task owned by a user, living inside a todo list.
type Todo struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	ValidUntil   time.Time  `json:"valid_until"` // due timestamp; past due open todos get expired
	UserID       string     `json:"user_id"`
	TodoListID   string     `json:"todo_list_id"`
	StatusID     TodoStatus `json:"status_id"`
	CreatedDate  time.Time  `json:"created_date"`
	ModifiedDate time.Time  `json:"modified_date"`
}

// Deleted reports whether the todo has been soft-deleted. Deleted todos are
// invisible to API reads, cached copies included.
func (t *Todo) Deleted() bool {
	return t.StatusID == TodoDeleted
}
