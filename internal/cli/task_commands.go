package cli

import (
	"context"
	"fmt"

	"locked-todo/internal/errors"
	"locked-todo/internal/services"
)

// AddCommand handles the add command
type AddCommand struct {
	controller services.TaskListController
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{controller: app.controller}
}

// Execute puts the text in the draft and submits it. Without text the
// existing draft is submitted, so a denied add can simply be retried.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		c.controller.SetDraft(args[0])
	}
	_, err := c.controller.SubmitDraft(ctx)
	return err
}

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute runs the toggle command
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "toggle", "usage: toggle <n>")
	}
	id, err := c.app.resolveTaskID(ctx, args[0])
	if err != nil {
		return err
	}
	return c.app.controller.Toggle(ctx, id)
}

// EditCommand handles the edit command
type EditCommand struct {
	app *App
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: edit <n>")
	}
	id, err := c.app.resolveTaskID(ctx, args[0])
	if err != nil {
		return err
	}
	return c.app.controller.BeginEdit(ctx, id)
}

// SaveCommand handles the save command
type SaveCommand struct {
	app *App
}

// NewSaveCommand creates a new save command handler
func NewSaveCommand(app *App) *SaveCommand {
	return &SaveCommand{app: app}
}

// Execute saves the row under edit. The new text is kept as typed and
// may be empty.
func (c *SaveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "save", "usage: save <n> <text>")
	}
	id, err := c.app.resolveTaskID(ctx, args[0])
	if err != nil {
		return err
	}
	if !c.app.controller.EditCursor().IsEditing(id) {
		return errors.NewInvalidInputError("row", args[0], fmt.Sprintf("row %s is not being edited, use edit %s first", args[0], args[0]))
	}

	var text string
	if len(args) > 1 {
		text = args[1]
	}
	return c.app.controller.Save(ctx, id, text)
}

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: delete <n>")
	}
	id, err := c.app.resolveTaskID(ctx, args[0])
	if err != nil {
		return err
	}
	return c.app.controller.Delete(ctx, id)
}
