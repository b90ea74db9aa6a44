package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/todohub/internal/todo/domain"
	"github.com/aussiebroadwan/todohub/internal/todo/store"
)

const todoCols = `id, title, description, valid_until, user_id, todo_list_id, status_id, created_date, modified_date`

type todosRepo struct {
	q dbtx
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (domain.Todo, error) {
	var t domain.Todo
	var desc sql.NullString
	err := row.Scan(&t.ID, &t.Title, &desc, &t.ValidUntil, &t.UserID, &t.TodoListID, &t.StatusID, &t.CreatedDate, &t.ModifiedDate)
	if err != nil {
		return domain.Todo{}, err
	}
	t.Description = mapNullString(desc)
	return t, nil
}

func collectTodos(rows *sql.Rows) ([]domain.Todo, error) {
	defer rows.Close()

	var out []domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *todosRepo) Get(ctx context.Context, id string) (*domain.Todo, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+todoCols+` FROM todos WHERE id = ?`, id)
	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *todosRepo) GetMany(ctx context.Context, ids []string) ([]domain.Todo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+todoCols+` FROM todos WHERE id IN (`+placeholders(len(ids))+`)`,
		idArgs(ids)...)
	if err != nil {
		return nil, err
	}
	return collectTodos(rows)
}

func (r *todosRepo) All(ctx context.Context) ([]domain.Todo, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+todoCols+` FROM todos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectTodos(rows)
}

func (r *todosRepo) Insert(ctx context.Context, t *domain.Todo) error {
	now := time.Now().UTC()
	if t.CreatedDate.IsZero() {
		t.CreatedDate = now
	}
	if t.ModifiedDate.IsZero() {
		t.ModifiedDate = now
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO todos (`+todoCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, mapStringNull(t.Description), t.ValidUntil, t.UserID, t.TodoListID, t.StatusID, t.CreatedDate, t.ModifiedDate)
	return err
}

func (r *todosRepo) Update(ctx context.Context, t *domain.Todo) error {
	t.ModifiedDate = time.Now().UTC()

	res, err := r.q.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, valid_until = ?, user_id = ?, todo_list_id = ?, status_id = ?, modified_date = ? WHERE id = ?`,
		t.Title, mapStringNull(t.Description), t.ValidUntil, t.UserID, t.TodoListID, t.StatusID, t.ModifiedDate, t.ID)
	if err != nil {
		return err
	}

	// Upsert semantics: an unknown id becomes an insert
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.Insert(ctx, t)
	}
	return nil
}

func (r *todosRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	return err
}

func (r *todosRepo) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM todos WHERE id IN (`+placeholders(len(ids))+`)`,
		idArgs(ids)...)
	return err
}

func (r *todosRepo) UserList(ctx context.Context, userID string) ([]domain.Todo, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+todoCols+` FROM todos WHERE user_id = ? AND status_id != ? ORDER BY id`,
		userID, domain.TodoDeleted)
	if err != nil {
		return nil, err
	}
	return collectTodos(rows)
}

func (r *todosRepo) UserGet(ctx context.Context, userID, id string) (*domain.Todo, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+todoCols+` FROM todos WHERE id = ? AND user_id = ? AND status_id != ?`,
		id, userID, domain.TodoDeleted)
	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *todosRepo) UserUpdateStatus(ctx context.Context, userID, id string, status domain.TodoStatus) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE todos SET status_id = ?, modified_date = ? WHERE id = ? AND user_id = ? AND status_id != ?`,
		status, time.Now().UTC(), id, userID, status)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *todosRepo) ExpireOverdue(ctx context.Context, now time.Time) ([]store.TodoUser, error) {
	// 1. Collect the overdue open todos
	rows, err := r.q.QueryContext(ctx,
		`SELECT id FROM todos WHERE status_id = ? AND valid_until < ?`,
		domain.TodoOpen, now)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	// 2. Flip them to expired, re-checking they are still open so a
	// concurrent run can't expire (and report) a row twice
	res, err := r.q.ExecContext(ctx,
		`UPDATE todos SET status_id = ?, modified_date = ? WHERE id IN (`+placeholders(len(ids))+`) AND status_id = ?`,
		append(append([]any{domain.TodoExpired, now}, idArgs(ids)...), domain.TodoOpen)...)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, nil
	}

	// 3. Read the freshly expired rows back with their owners
	rows, err = r.q.QueryContext(ctx,
		`SELECT t.id, t.title, t.description, t.valid_until, t.user_id, t.todo_list_id, t.status_id, t.created_date, t.modified_date,
		        u.id, u.sub_id, u.email, u.status_id, u.created_date, u.modified_date
		 FROM todos t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.id IN (`+placeholders(len(ids))+`) AND t.status_id = ? AND t.modified_date = ?
		 ORDER BY t.id`,
		append(append(idArgs(ids), domain.TodoExpired), now)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.TodoUser
	for rows.Next() {
		var pair store.TodoUser
		var desc sql.NullString
		err := rows.Scan(
			&pair.Todo.ID, &pair.Todo.Title, &desc, &pair.Todo.ValidUntil, &pair.Todo.UserID,
			&pair.Todo.TodoListID, &pair.Todo.StatusID, &pair.Todo.CreatedDate, &pair.Todo.ModifiedDate,
			&pair.User.ID, &pair.User.SubID, &pair.User.Email, &pair.User.StatusID,
			&pair.User.CreatedDate, &pair.User.ModifiedDate)
		if err != nil {
			return nil, err
		}
		pair.Todo.Description = mapNullString(desc)
		out = append(out, pair)
	}
	return out, rows.Err()
}
