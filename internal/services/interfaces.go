package services

import (
	"context"

	"locked-todo/internal/auth"
	"locked-todo/internal/domain"
)

// Intent names a user action that mutates the task list.
type Intent string

const (
	IntentAdd    Intent = "add"
	IntentToggle Intent = "toggle"
	IntentEdit   Intent = "edit"
	IntentSave   Intent = "save"
	IntentDelete Intent = "delete"
)

// IntentState is the lifecycle of a single mutating intent.
type IntentState int

const (
	StateIdle IntentState = iota
	StateAuthenticating
	StateApplied
	StateDenied
)

func (s IntentState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAuthenticating:
		return "authenticating"
	case StateApplied:
		return "applied"
	case StateDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Event describes a state transition of the controller.
type Event struct {
	Intent  Intent
	State   IntentState
	TaskID  string
	Outcome auth.Outcome
}

// Listener is notified after every transition; presentation re-renders on it.
type Listener func(Event)

// Authenticator gates a mutation behind a challenge.
type Authenticator interface {
	CheckCapability() auth.Capability
	Authenticate(ctx context.Context, prompt string) auth.Outcome
}

// TaskListController owns the task list, the edit cursor and the input draft.
// Every mutation validates, authenticates and then applies or does nothing.
type TaskListController interface {
	// Mutations
	Add(ctx context.Context, text string) (*domain.Task, error)
	Toggle(ctx context.Context, id string) error
	BeginEdit(ctx context.Context, id string) error
	Save(ctx context.Context, id string, newText string) error
	Delete(ctx context.Context, id string) error

	// Input draft
	Draft() string
	SetDraft(text string)
	SubmitDraft(ctx context.Context) (*domain.Task, error)

	// Read side
	Tasks(ctx context.Context) ([]domain.Task, error)
	EditCursor() domain.EditCursor
	State() IntentState
	Capability() auth.Capability
	OnChange(listener Listener)
}
