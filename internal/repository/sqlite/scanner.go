package sqlite

// taskColumns is the column order ScanTask expects
const taskColumns = "seq, id, text, completed"

// Scanner is implemented by *sql.Row and *sql.Rows
type Scanner interface {
	Scan(dest ...any) error
}

// Rows is the iteration part of *sql.Rows
type Rows interface {
	Scanner
	Next() bool
	Err() error
}

// ScanTask reads one row selected with taskColumns
func ScanTask(row Scanner) (*Task, error) {
	var t Task
	if err := row.Scan(&t.Seq, &t.ID, &t.Text, &t.Completed); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	out := make([]*T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
