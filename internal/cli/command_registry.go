package cli

import (
	"context"
	"strings"

	"locked-todo/internal/errors"
)

// Command represents a shell command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// commandSpec describes how a shell line is handed to a command
type commandSpec struct {
	command Command
	// gated commands authenticate, so no application deadline applies:
	// the user may take as long as auth.timeout allows.
	gated bool
	// textAfter is the number of leading words before a free-text
	// argument, which is passed as typed; -1 means words only.
	textAfter int
}

// CommandRegistry manages all available shell commands
type CommandRegistry struct {
	commands map[string]commandSpec
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]commandSpec),
	}

	registry.register("add", NewAddCommand(app), true, 0)
	registry.register("toggle", NewToggleCommand(app), true, -1)
	registry.register("edit", NewEditCommand(app), true, -1)
	registry.register("save", NewSaveCommand(app), true, 1)
	registry.register("delete", NewDeleteCommand(app), true, -1)
	registry.Register("list", NewListCommand(app))
	registry.Register("status", NewStatusCommand(app))
	registry.Register("help", NewHelpCommand(app))
	registry.Register("quit", quitCommand{})
	registry.Register("exit", quitCommand{})

	return registry
}

// Register adds a command that takes plain words and runs under the
// application timeout
func (r *CommandRegistry) Register(name string, command Command) {
	r.register(name, command, false, -1)
}

func (r *CommandRegistry) register(name string, command Command, gated bool, textAfter int) {
	r.commands[name] = commandSpec{command: command, gated: gated, textAfter: textAfter}
}

// Gated reports whether the command asks for authentication
func (r *CommandRegistry) Gated(commandName string) bool {
	return r.commands[commandName].gated
}

// Execute runs the specified command with the rest of the shell line
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, rest string) error {
	spec, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command, type help")
	}
	return spec.command.Execute(ctx, splitArgs(rest, spec.textAfter))
}

// splitArgs splits rest into words. With textAfter >= 0, only that many
// words are split off and whatever follows the next separator is kept
// verbatim as the last argument.
func splitArgs(rest string, textAfter int) []string {
	if textAfter < 0 {
		return strings.Fields(rest)
	}

	args := make([]string, 0, textAfter+1)
	for i := 0; i < textAfter; i++ {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			return args
		}
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			return append(args, rest)
		}
		args = append(args, rest[:end])
		rest = rest[end+1:]
	}
	if rest != "" {
		args = append(args, rest)
	}
	return args
}

// GetUsage returns the usage string for the shell
func (r *CommandRegistry) GetUsage() string {
	return strings.Join([]string{
		"add <text>         add a task (add alone submits the current draft)",
		"toggle <n>         mark task n done or not done",
		"edit <n>           start editing task n",
		"save <n> <text>    replace the text of task n and stop editing",
		"delete <n>         remove task n",
		"list               show the list again",
		"status             show authentication availability",
		"help               show this help",
		"quit               leave, discarding all tasks",
	}, "\n")
}

type quitCommand struct{}

func (quitCommand) Execute(ctx context.Context, args []string) error {
	return errQuit
}
