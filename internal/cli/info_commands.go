package cli

import (
	"context"
	"fmt"
	"io"

	"locked-todo/internal/auth"
	"locked-todo/internal/services"
)

// ListCommand handles the list command. The shell redraws after every
// command, so listing has nothing else to do.
type ListCommand struct{}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{}
}

func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	return nil
}

// StatusCommand handles the status command
type StatusCommand struct {
	controller services.TaskListController
	out        io.Writer
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{controller: app.controller, out: app.out}
}

// Execute prints the capability snapshot and the current intent state
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	printCapability(c.out, c.controller.Capability())
	fmt.Fprintf(c.out, "state:          %s\n", c.controller.State())
	return nil
}

// HelpCommand handles the help command
type HelpCommand struct {
	app *App
}

// NewHelpCommand creates a new help command handler
func NewHelpCommand(app *App) *HelpCommand {
	return &HelpCommand{app: app}
}

func (c *HelpCommand) Execute(ctx context.Context, args []string) error {
	fmt.Fprintln(c.app.out, c.app.registry.GetUsage())
	return nil
}

func printCapability(out io.Writer, capability auth.Capability) {
	fmt.Fprintf(out, "hardware:       %s\n", yesNo(capability.HardwareAvailable))
	fmt.Fprintf(out, "enrolled:       %s\n", yesNo(capability.Enrolled))
	if capability.Available() {
		fmt.Fprintln(out, "authentication: available")
	} else {
		fmt.Fprintln(out, "authentication: not available")
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
