package domain

// EditCursor identifies the task currently in edit mode, if any.
type EditCursor struct {
	taskID string
	active bool
}

// NewEditCursor returns a cursor pointing at no task.
func NewEditCursor() EditCursor {
	return EditCursor{}
}

// Set points the cursor at the given task.
func (c EditCursor) Set(taskID string) EditCursor {
	return EditCursor{taskID: taskID, active: true}
}

// Clear returns a cursor pointing at no task.
func (c EditCursor) Clear() EditCursor {
	return EditCursor{}
}

// TaskID returns the task under edit and whether there is one.
func (c EditCursor) TaskID() (string, bool) {
	return c.taskID, c.active
}

// IsEditing reports whether the given task is the one under edit.
func (c EditCursor) IsEditing(taskID string) bool {
	return c.active && c.taskID == taskID
}
