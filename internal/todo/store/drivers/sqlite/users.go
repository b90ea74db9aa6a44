package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/todohub/internal/todo/domain"
)

const userCols = `id, sub_id, email, status_id, created_date, modified_date`

type usersRepo struct {
	q dbtx
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.SubID, &u.Email, &u.StatusID, &u.CreatedDate, &u.ModifiedDate)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *usersRepo) getBy(ctx context.Context, where string, arg any) (*domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE `+where, arg)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usersRepo) Get(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, `id = ?`, id)
}

func (r *usersRepo) GetBySubID(ctx context.Context, subID string) (*domain.User, error) {
	return r.getBy(ctx, `sub_id = ?`, subID)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, `email = ?`, email)
}

func (r *usersRepo) Insert(ctx context.Context, u *domain.User) error {
	now := time.Now().UTC()
	if u.CreatedDate.IsZero() {
		u.CreatedDate = now
	}
	if u.ModifiedDate.IsZero() {
		u.ModifiedDate = now
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (`+userCols+`) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.SubID, u.Email, u.StatusID, u.CreatedDate, u.ModifiedDate)
	return err
}

func (r *usersRepo) Update(ctx context.Context, u *domain.User) error {
	u.ModifiedDate = time.Now().UTC()

	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET sub_id = ?, email = ?, status_id = ?, modified_date = ? WHERE id = ?`,
		u.SubID, u.Email, u.StatusID, u.ModifiedDate, u.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.Insert(ctx, u)
	}
	return nil
}
