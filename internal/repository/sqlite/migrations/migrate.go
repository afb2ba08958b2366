package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

//go:embed *.sql
var scripts embed.FS

// Migration is one numbered schema change with its inverse
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Migrator applies the embedded migrations to a database and records
// them in schema_migrations
type Migrator struct {
	db         *sql.DB
	migrations []Migration
}

// New loads the embedded migrations for db
func New(db *sql.DB) (*Migrator, error) {
	migrations, err := Load(scripts)
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	return &Migrator{db: db, migrations: migrations}, nil
}

// RunMigrations brings db up to the latest schema
func RunMigrations(ctx context.Context, db *sql.DB) error {
	m, err := New(db)
	if err != nil {
		return err
	}
	return m.Up(ctx)
}

// Load reads NNNNNN_name.up.sql / .down.sql pairs from fsys, ordered by version
func Load(fsys fs.FS) ([]Migration, error) {
	ups, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, err
	}

	migrations := make([]Migration, 0, len(ups))
	for _, file := range ups {
		base := strings.TrimSuffix(file, ".up.sql")
		version, name, ok := parseName(base)
		if !ok {
			return nil, fmt.Errorf("migration %s: name must look like 000001_description", file)
		}
		up, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, err
		}
		down, err := fs.ReadFile(fsys, base+".down.sql")
		if err != nil {
			return nil, fmt.Errorf("migration %d has no down script: %w", version, err)
		}
		migrations = append(migrations, Migration{Version: version, Name: name, Up: string(up), Down: string(down)})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}
	return migrations, nil
}

// Up applies every migration not yet recorded
func (m *Migrator) Up(ctx context.Context) error {
	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for _, mig := range m.migrations {
		if done[mig.Version] {
			continue
		}
		err := m.inTx(ctx, mig.Up, `INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, mig.Version, mig.Name)
		if err != nil {
			return fmt.Errorf("apply migration %d %s: %w", mig.Version, mig.Name, err)
		}
	}
	return nil
}

// Down reverts the latest steps applied migrations, newest first
func (m *Migrator) Down(ctx context.Context, steps int) error {
	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}

	for i := len(applied) - 1; i >= 0 && steps > 0; i, steps = i-1, steps-1 {
		mig, ok := m.find(applied[i])
		if !ok {
			return fmt.Errorf("revert migration %d: no script embedded", applied[i])
		}
		if err := m.inTx(ctx, mig.Down, `DELETE FROM schema_migrations WHERE version = ?`, mig.Version); err != nil {
			return fmt.Errorf("revert migration %d %s: %w", mig.Version, mig.Name, err)
		}
	}
	return nil
}

// Applied lists recorded versions in ascending order
func (m *Migrator) Applied(ctx context.Context) ([]int, error) {
	_, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (m *Migrator) find(version int) (Migration, bool) {
	for _, mig := range m.migrations {
		if mig.Version == version {
			return mig, true
		}
	}
	return Migration{}, false
}

// inTx runs script and the bookkeeping statement atomically
func (m *Migrator) inTx(ctx context.Context, script, record string, args ...any) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		return err
	}
	return tx.Commit()
}

// parseName splits "000001_create_tasks" into 1 and "create_tasks"
func parseName(base string) (int, string, bool) {
	num, name, ok := strings.Cut(base, "_")
	if !ok || name == "" {
		return 0, "", false
	}
	version, err := strconv.Atoi(num)
	if err != nil || version <= 0 {
		return 0, "", false
	}
	return version, name, true
}
