package sqlite

// Task is a row of the tasks table. Seq is the insertion sequence that
// defines list order; ID is the stable public identifier.
type Task struct {
	Seq       int64
	ID        string
	Text      string
	Completed bool
}
