package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "locked-todo/internal/errors"
)

type fakeResult struct {
	affected int64
	err      error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, r.err }
func (r fakeResult) RowsAffected() (int64, error) { return r.affected, r.err }

func TestDBError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType apperrors.ErrorType
	}{
		{"no rows", sql.ErrNoRows, apperrors.ErrorTypeNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), apperrors.ErrorTypeNotFound},
		{"driver failure", errors.New("database is locked"), apperrors.ErrorTypeDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dbError("get task", "a1", tt.err)
			assert.True(t, apperrors.IsErrorType(err, tt.wantType), "got %v", err)
		})
	}

	err := dbError("get task", "a1", sql.ErrNoRows)
	assert.EqualError(t, err, "not_found: task not found: a1")
}

func TestExpectOne(t *testing.T) {
	assert.NoError(t, expectOne(fakeResult{affected: 1}, "update task", "a1"))

	err := expectOne(fakeResult{}, "update task", "a1")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))

	err = expectOne(fakeResult{err: errors.New("driver gone")}, "update task", "a1")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
	assert.ErrorContains(t, err, "update task")
	assert.ErrorContains(t, err, "driver gone")
}

func TestInsertSeq_Grows(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	insert := `INSERT INTO tasks (id, text) VALUES (?, ?)`

	first, err := insertSeq(ctx, repo.db, "insert task", insert, "a1", "one")
	require.NoError(t, err)
	second, err := insertSeq(ctx, repo.db, "insert task", insert, "b2", "two")
	require.NoError(t, err)
	assert.Greater(t, second, first)

	_, err = insertSeq(ctx, repo.db, "insert task", insert, "a1", "dup")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
}

func TestTouchOne_InTransaction(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	id := seedTasks(t, repo, "Buy milk")[0].ID

	tx, err := repo.db.BeginTx(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, touchOne(ctx, tx, "delete task", id, `DELETE FROM tasks WHERE id = ?`, id))
	err = touchOne(ctx, tx, "delete task", id, `DELETE FROM tasks WHERE id = ?`, id)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	require.NoError(t, tx.Rollback())

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids(tasks), "rolled back delete keeps the task")
}

func TestSelectOne_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := selectOne(context.Background(), repo.db, "get task", "missing", ScanTask,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, "missing")

	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestSelectAll_BadQuery(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := selectAll(context.Background(), repo.db, "list tasks", ScanTask, `SELECT * FROM no_such_table`)

	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
	assert.ErrorContains(t, err, "list tasks")
}
