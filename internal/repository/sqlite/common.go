package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"locked-todo/internal/errors"
)

const entityTask = "task"

// execer is the part of *sql.DB and *sql.Tx the repository uses
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// dbError converts a driver error for the task with id. A missing row
// becomes NotFound; anything else is a Database error for op.
func dbError(op, id string, err error) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError(entityTask, id)
	}
	return errors.NewDatabaseError(op, err)
}

// insertSeq runs an INSERT and returns the generated rowid
func insertSeq(ctx context.Context, db execer, op, query string, args ...any) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.NewDatabaseError(op, err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, errors.NewDatabaseError(op, err)
	}
	return seq, nil
}

// touchOne runs a statement that must hit the task with id
func touchOne(ctx context.Context, db execer, op, id, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.NewDatabaseError(op, err)
	}
	return expectOne(res, op, id)
}

func expectOne(res sql.Result, op, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError(op, err)
	}
	if n == 0 {
		return errors.NewNotFoundError(entityTask, id)
	}
	return nil
}

// selectOne scans the single row the query returns for id
func selectOne[T any](ctx context.Context, db execer, op, id string, scan func(Scanner) (*T, error), query string, args ...any) (*T, error) {
	v, err := scan(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, dbError(op, id, err)
	}
	return v, nil
}

// selectAll scans every row the query returns; an empty result is a non-nil slice
func selectAll[T any](ctx context.Context, db execer, op string, scan func(Scanner) (*T, error), query string, args ...any) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError(op, err)
	}
	defer rows.Close()

	out, err := scanAll(rows, scan)
	if err != nil {
		return nil, errors.NewDatabaseError(op, err)
	}
	return out, nil
}
