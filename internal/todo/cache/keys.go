package cache

import "time"

// Key layout and TTLs shared by the read-through decorators and the
// post-commit invalidation listener.

const (
	// TodoTTL bounds staleness of single-todo entries.
	TodoTTL = 5 * time.Minute

	// TodoListsTTL backstops the per-user list sets. They are invalidated
	// explicitly on write; the TTL only catches a missed invalidation.
	TodoListsTTL = 12 * time.Hour
)

// TodoKey is the cache key for a single serialized todo.
func TodoKey(id string) string {
	return "todo:" + id
}

// TodoListsKey is the cache key for a user's set of serialized todo lists.
func TodoListsKey(userID string) string {
	return "todo_lists:" + userID
}
