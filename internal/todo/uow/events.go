package uow

import "context"

// Op is the kind of row mutation an event describes.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
)

// Entity names the table an event belongs to. Users carry no cache state,
// so only todos and todo lists emit events.
type Entity string

const (
	EntityTodo     Entity = "todo"
	EntityTodoList Entity = "todo_list"
)

// Event is one committed row mutation.
type Event struct {
	Op     Op
	Entity Entity
	ID     string
	UserID string
}

// CommitListener receives the unit of work's buffered events after the
// outermost commit succeeds. It runs synchronously on the request path, so
// implementations must be quick and must not fail the request.
type CommitListener interface {
	AfterCommit(ctx context.Context, events []Event)
}
