package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/todohub/internal/todo/domain"
)

const todoListCols = `id, name, user_id, status_id, created_date, modified_date`

type todoListsRepo struct {
	q dbtx
}

func scanTodoList(row rowScanner) (domain.TodoList, error) {
	var l domain.TodoList
	err := row.Scan(&l.ID, &l.Name, &l.UserID, &l.StatusID, &l.CreatedDate, &l.ModifiedDate)
	if err != nil {
		return domain.TodoList{}, err
	}
	return l, nil
}

func collectTodoLists(rows *sql.Rows) ([]domain.TodoList, error) {
	defer rows.Close()

	var out []domain.TodoList
	for rows.Next() {
		l, err := scanTodoList(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *todoListsRepo) Get(ctx context.Context, id string) (*domain.TodoList, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+todoListCols+` FROM todo_lists WHERE id = ?`, id)
	l, err := scanTodoList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *todoListsRepo) GetMany(ctx context.Context, ids []string) ([]domain.TodoList, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+todoListCols+` FROM todo_lists WHERE id IN (`+placeholders(len(ids))+`)`,
		idArgs(ids)...)
	if err != nil {
		return nil, err
	}
	return collectTodoLists(rows)
}

func (r *todoListsRepo) All(ctx context.Context) ([]domain.TodoList, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+todoListCols+` FROM todo_lists ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectTodoLists(rows)
}

func (r *todoListsRepo) Insert(ctx context.Context, l *domain.TodoList) error {
	now := time.Now().UTC()
	if l.CreatedDate.IsZero() {
		l.CreatedDate = now
	}
	if l.ModifiedDate.IsZero() {
		l.ModifiedDate = now
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO todo_lists (`+todoListCols+`) VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.UserID, l.StatusID, l.CreatedDate, l.ModifiedDate)
	return err
}

func (r *todoListsRepo) Update(ctx context.Context, l *domain.TodoList) error {
	l.ModifiedDate = time.Now().UTC()

	res, err := r.q.ExecContext(ctx,
		`UPDATE todo_lists SET name = ?, user_id = ?, status_id = ?, modified_date = ? WHERE id = ?`,
		l.Name, l.UserID, l.StatusID, l.ModifiedDate, l.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.Insert(ctx, l)
	}
	return nil
}

func (r *todoListsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM todo_lists WHERE id = ?`, id)
	return err
}

func (r *todoListsRepo) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM todo_lists WHERE id IN (`+placeholders(len(ids))+`)`,
		idArgs(ids)...)
	return err
}

func (r *todoListsRepo) UserList(ctx context.Context, userID string) ([]domain.TodoList, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+todoListCols+` FROM todo_lists WHERE user_id = ? AND status_id != ? ORDER BY id`,
		userID, domain.TodoListDeleted)
	if err != nil {
		return nil, err
	}
	return collectTodoLists(rows)
}

func (r *todoListsRepo) UserGet(ctx context.Context, userID, id string) (*domain.TodoList, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+todoListCols+` FROM todo_lists WHERE id = ? AND user_id = ? AND status_id != ?`,
		id, userID, domain.TodoListDeleted)
	l, err := scanTodoList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UserGetWithTodos loads the list and its non-deleted todos in one joined
// query, avoiding a second round trip per list read.
func (r *todoListsRepo) UserGetWithTodos(ctx context.Context, userID, id string) (*domain.TodoList, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT l.id, l.name, l.user_id, l.status_id, l.created_date, l.modified_date,
		        t.id, t.title, t.description, t.valid_until, t.user_id, t.todo_list_id, t.status_id, t.created_date, t.modified_date
		 FROM todo_lists l
		 LEFT JOIN todos t ON t.todo_list_id = l.id AND t.status_id != ?
		 WHERE l.id = ? AND l.user_id = ? AND l.status_id != ?
		 ORDER BY t.id`,
		domain.TodoDeleted, id, userID, domain.TodoListDeleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list *domain.TodoList
	for rows.Next() {
		var l domain.TodoList
		var (
			tID, tTitle, tUserID, tListID sql.NullString
			tDesc                         sql.NullString
			tValidUntil, tCreated, tMod   sql.NullTime
			tStatus                       sql.NullInt64
		)
		err := rows.Scan(&l.ID, &l.Name, &l.UserID, &l.StatusID, &l.CreatedDate, &l.ModifiedDate,
			&tID, &tTitle, &tDesc, &tValidUntil, &tUserID, &tListID, &tStatus, &tCreated, &tMod)
		if err != nil {
			return nil, err
		}

		if list == nil {
			list = &l
		}
		if tID.Valid {
			list.Todos = append(list.Todos, domain.Todo{
				ID:           tID.String,
				Title:        tTitle.String,
				Description:  mapNullString(tDesc),
				ValidUntil:   tValidUntil.Time,
				UserID:       tUserID.String,
				TodoListID:   tListID.String,
				StatusID:     domain.TodoStatus(tStatus.Int64),
				CreatedDate:  tCreated.Time,
				ModifiedDate: tMod.Time,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *todoListsRepo) UserUpdateStatus(ctx context.Context, userID, id string, status domain.TodoListStatus) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE todo_lists SET status_id = ?, modified_date = ? WHERE id = ? AND user_id = ? AND status_id != ?`,
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
