package domain

import "time"

// TodoList groups todos for a user. Lists own their todos softly; deleting
// a list does not cascade to its todos.
type TodoList struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	UserID       string         `json:"user_id"`
	StatusID     TodoListStatus `json:"status_id"`
	CreatedDate  time.Time      `json:"created_date"`
	ModifiedDate time.Time      `json:"modified_date"`

	// Todos is populated only by the eager-loading read path.
	Todos []Todo `json:"todos,omitempty"`
}

// Deleted reports whether the list has been soft-deleted.
func (l *TodoList) Deleted() bool {
	return l.StatusID == TodoListDeleted
}
