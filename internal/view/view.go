package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"locked-todo/internal/auth"
	"locked-todo/internal/domain"
	"locked-todo/internal/services"
)

const (
	Title            = "My TODO List"
	InputPlaceholder = "Add a new TODO"
)

// Model is everything the screen shows at one point in time.
type Model struct {
	Tasks      []domain.Task
	Cursor     domain.EditCursor
	Draft      string
	State      services.IntentState
	Capability auth.Capability
	Notice     string
}

// Snapshot reads a Model from the controller.
func Snapshot(ctx context.Context, controller services.TaskListController) (Model, error) {
	tasks, err := controller.Tasks(ctx)
	if err != nil {
		return Model{}, err
	}
	return Model{
		Tasks:      tasks,
		Cursor:     controller.EditCursor(),
		Draft:      controller.Draft(),
		State:      controller.State(),
		Capability: controller.Capability(),
	}, nil
}

// View renders models to a writer.
type View struct {
	out    io.Writer
	styles Styles
}

func New(out io.Writer) *View {
	return &View{out: out, styles: NewStyles(out)}
}

// Draw renders m to the view's writer.
func (v *View) Draw(m Model) error {
	_, err := io.WriteString(v.out, v.Render(m))
	return err
}

// Render returns the screen for m.
func (v *View) Render(m Model) string {
	var b strings.Builder
	s := v.styles

	b.WriteString(s.Title.Render(Title))
	b.WriteString("\n")

	if !m.Capability.Available() {
		b.WriteString(s.Notice.Render("Authentication is not available on this device."))
		b.WriteString("\n")
	}

	if m.Draft == "" {
		b.WriteString("> " + s.Placeholder.Render(InputPlaceholder))
	} else {
		b.WriteString("> " + s.Input.Render(m.Draft))
	}
	b.WriteString("\n\n")

	if len(m.Tasks) == 0 {
		b.WriteString(s.Empty.Render("No tasks yet."))
		b.WriteString("\n")
	}
	for i, task := range m.Tasks {
		b.WriteString(v.renderRow(i+1, task, m.Cursor.IsEditing(task.ID)))
		b.WriteString("\n")
	}

	if m.State == services.StateAuthenticating {
		b.WriteString("\n" + s.Status.Render("Waiting for authentication..."))
		b.WriteString("\n")
	}
	if m.Notice != "" {
		b.WriteString("\n" + s.Notice.Render(m.Notice))
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderRow(n int, task domain.Task, editing bool) string {
	s := v.styles
	index := s.Index.Render(fmt.Sprintf("%2d.", n))

	if editing {
		field := s.Editing.Render(task.Text)
		hint := s.Hint.Render(fmt.Sprintf("save %d <text>", n))
		return fmt.Sprintf("%s [edit] %s  %s", index, field, hint)
	}

	if task.Completed {
		return fmt.Sprintf("%s [x] %s", index, s.Completed.Render(task.Text))
	}
	return fmt.Sprintf("%s [ ] %s", index, s.Task.Render(task.Text))
}

// DrawEvent writes a single status line for a controller transition.
func (v *View) DrawEvent(e services.Event) error {
	var line string
	switch e.State {
	case services.StateAuthenticating:
		line = fmt.Sprintf("Authenticate to %s...", e.Intent)
	case services.StateDenied:
		line = fmt.Sprintf("%s not applied (%s)", e.Intent, e.Outcome)
	default:
		return nil
	}
	_, err := fmt.Fprintln(v.out, v.styles.Status.Render(line))
	return err
}
