package sqlite

import (
	"context"
	"database/sql"

	"locked-todo/internal/errors"
	"locked-todo/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for task storage operations
type Repository interface {
	// Create operations
	CreateTask(ctx context.Context, task *Task) error

	// Read operations
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)

	// Update operations
	UpdateTask(ctx context.Context, task *Task) error

	// Delete operations
	DeleteTask(ctx context.Context, id string) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance.
// An in-memory database exists per connection, so the pool is pinned to a
// single connection that lives as long as the repository.
func New(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection, discarding all tasks
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTask appends a new task; task.Seq is set from the database
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	seq, err := insertSeq(ctx, r.db, "insert task",
		`INSERT INTO tasks (id, text, completed) VALUES (?, ?, ?)`,
		task.ID, task.Text, task.Completed)
	if err != nil {
		return err
	}
	task.Seq = seq
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*Task, error) {
	return selectOne(ctx, r.db, "get task", id, ScanTask,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
}

// ListTasks retrieves all tasks in insertion order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	return selectAll(ctx, r.db, "list tasks", ScanTask,
		`SELECT `+taskColumns+` FROM tasks ORDER BY seq ASC`)
}

// UpdateTask updates text and completion of an existing task; order is untouched
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	return touchOne(ctx, r.db, "update task", task.ID,
		`UPDATE tasks SET text = ?, completed = ? WHERE id = ?`,
		task.Text, task.Completed, task.ID)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	return touchOne(ctx, r.db, "delete task", id, `DELETE FROM tasks WHERE id = ?`, id)
}
