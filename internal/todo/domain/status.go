package domain

import "fmt"

// Status enums are fixed id to name tables. The ids are part of the wire
// and storage format, so they never change or get reused.

type UserStatus int

const (
	UserEnabled  UserStatus = 1
	UserDisabled UserStatus = 2
)

var userStatusNames = map[UserStatus]string{
	UserEnabled:  "enabled",
	UserDisabled: "disabled",
}

// Name returns the stable name for the status, or an error for unknown ids.
func (s UserStatus) Name() (string, error) {
	name, ok := userStatusNames[s]
	if !ok {
		return "", fmt.Errorf("domain: unknown user status %d", int(s))
	}
	return name, nil
}

// Valid reports whether the id is a known user status.
func (s UserStatus) Valid() bool {
	_, ok := userStatusNames[s]
	return ok
}

type TodoListStatus int

const (
	TodoListOpen    TodoListStatus = 1
	TodoListClosed  TodoListStatus = 2
	TodoListDeleted TodoListStatus = 3
)

var todoListStatusNames = map[TodoListStatus]string{
	TodoListOpen:    "open",
	TodoListClosed:  "closed",
	TodoListDeleted: "deleted",
}

func (s TodoListStatus) Name() (string, error) {
	name, ok := todoListStatusNames[s]
	if !ok {
		return "", fmt.Errorf("domain: unknown todo list status %d", int(s))
	}
	return name, nil
}

func (s TodoListStatus) Valid() bool {
	_, ok := todoListStatusNames[s]
	return ok
}

type TodoStatus int

const (
	TodoOpen    TodoStatus = 1
	TodoClosed  TodoStatus = 2
	TodoExpired TodoStatus = 3
	TodoDeleted TodoStatus = 4
)

var todoStatusNames = map[TodoStatus]string{
	TodoOpen:    "open",
	TodoClosed:  "closed",
	TodoExpired: "expired",
	TodoDeleted: "deleted",
}

func (s TodoStatus) Name() (string, error) {
	name, ok := todoStatusNames[s]
	if !ok {
		return "", fmt.Errorf("domain: unknown todo status %d", int(s))
	}
	return name, nil
}

func (s TodoStatus) Valid() bool {
	_, ok := todoStatusNames[s]
	return ok
}
