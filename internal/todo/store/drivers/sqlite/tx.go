package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aussiebroadwan/todohub/internal/todo/store"
)

type txStore struct {
	tx    *sql.Tx
	depth int
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // nothing to close; caller will commit/rollback and outer DB stays open

// Ping is a no-op for transactions. The connection is already established
// when the transaction is created, so we just return nil.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// No BEGIN inside a transaction; nesting goes through Savepoint
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

// Savepoint opens a nested scope on the same underlying transaction.
func (t *txStore) Savepoint(ctx context.Context) (store.Tx, error) {
	return openSavepoint(ctx, t.tx, t.depth+1)
}

func (t *txStore) Todos() store.Todos         { return &todosRepo{q: t.tx} }
func (t *txStore) TodoLists() store.TodoLists { return &todoListsRepo{q: t.tx} }
func (t *txStore) Users() store.Users         { return &usersRepo{q: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // no-op; migrations should be applied before starting a tx

// savepointStore is a Tx scoped to a SAVEPOINT on an open transaction.
// Commit releases the savepoint, Rollback rewinds to it; either way the
// enclosing transaction stays open and usable.
type savepointStore struct {
	tx    *sql.Tx
	name  string
	depth int
}

func openSavepoint(ctx context.Context, tx *sql.Tx, depth int) (*savepointStore, error) {
	name := fmt.Sprintf("sp_%d", depth)
	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return nil, fmt.Errorf("savepoint %s: %w", name, err)
	}
	return &savepointStore{tx: tx, name: name, depth: depth}, nil
}

func (s *savepointStore) Commit() error {
	if _, err := s.tx.Exec("RELEASE SAVEPOINT " + s.name); err != nil {
		return fmt.Errorf("release savepoint %s: %w", s.name, err)
	}
	return nil
}

func (s *savepointStore) Rollback() error {
	if _, err := s.tx.Exec("ROLLBACK TO SAVEPOINT " + s.name); err != nil {
		return fmt.Errorf("rollback to savepoint %s: %w", s.name, err)
	}
	// Release so the name can be reused by a later sibling scope
	if _, err := s.tx.Exec("RELEASE SAVEPOINT " + s.name); err != nil {
		return fmt.Errorf("release savepoint %s: %w", s.name, err)
	}
	return nil
}

func (s *savepointStore) Savepoint(ctx context.Context) (store.Tx, error) {
	return openSavepoint(ctx, s.tx, s.depth+1)
}

func (s *savepointStore) Close() error                   { return nil }
func (s *savepointStore) Ping(ctx context.Context) error { return nil }

func (s *savepointStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (s *savepointStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (s *savepointStore) Todos() store.Todos         { return &todosRepo{q: s.tx} }
func (s *savepointStore) TodoLists() store.TodoLists { return &todoListsRepo{q: s.tx} }
func (s *savepointStore) Users() store.Users         { return &usersRepo{q: s.tx} }

func (s *savepointStore) ApplyMigrations() error { return nil }
