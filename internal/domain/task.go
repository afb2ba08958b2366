package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Task represents a single to-do entry in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID        string
	Text      string
	Completed bool
}

// NewTask creates a new, not yet completed Task with a fresh identifier.
func NewTask(text string) Task {
	return Task{
		ID:   uuid.NewString(),
		Text: text,
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.ID != "" && strings.TrimSpace(t.Text) != ""
}

// Toggle returns a copy of the task with the completed flag flipped.
func (t Task) Toggle() Task {
	t.Completed = !t.Completed
	return t
}

// String returns the task text for display purposes.
func (t Task) String() string {
	return t.Text
}
