package cli

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"locked-todo/internal/config"
	"locked-todo/internal/errors"
	"locked-todo/internal/services"
	"locked-todo/internal/view"
)

// errQuit ends the shell loop
var errQuit = stderrors.New("quit")

// App is the interactive task list shell
type App struct {
	controller   services.TaskListController
	view         *view.View
	registry     *CommandRegistry
	errorHandler *ErrorHandler
	in           *bufio.Reader
	out          io.Writer
	logger       *zap.Logger
	timeout      time.Duration
	notice       string
}

// NewApp creates a shell over controller. in must be the same reader the
// passcode platform prompts on, so both consume one line at a time.
func NewApp(controller services.TaskListController, in *bufio.Reader, out io.Writer, cfg *config.Config, logger *zap.Logger) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		controller:   controller,
		view:         view.New(out),
		errorHandler: NewErrorHandler(),
		in:           in,
		out:          out,
		logger:       logger.Named("shell"),
		timeout:      cfg.Application.Timeout,
	}
	app.registry = NewCommandRegistry(app)

	controller.OnChange(func(event services.Event) {
		app.logger.Debug("intent transition",
			zap.String("intent", string(event.Intent)),
			zap.Stringer("state", event.State),
			zap.String("task_id", event.TaskID))
		if event.State == services.StateAuthenticating {
			if err := app.view.DrawEvent(event); err != nil {
				app.logger.Warn("failed to draw event", zap.Error(err))
			}
		}
	})

	return app
}

// Run reads intents line by line until quit or end of input
func (a *App) Run(ctx context.Context) error {
	if err := a.redraw(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(a.out, "lt> ")
		line, readErr := a.in.ReadString('\n')
		if readErr != nil && !stderrors.Is(readErr, io.EOF) {
			return fmt.Errorf("failed to read input: %w", readErr)
		}

		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" {
			name, err := a.Dispatch(ctx, line)
			if stderrors.Is(err, errQuit) {
				return nil
			}
			a.notice = ""
			if err != nil {
				a.report(err)
			}
			if redrawsAfter(name) {
				if err := a.redraw(ctx); err != nil {
					return err
				}
			}
		}

		if stderrors.Is(readErr, io.EOF) {
			fmt.Fprintln(a.out)
			return nil
		}
	}
}

// Dispatch runs a single shell line and returns the command name. The
// application timeout bounds commands that do not authenticate; gated
// commands are bounded by auth.timeout inside the gate.
func (a *App) Dispatch(ctx context.Context, line string) (string, error) {
	line = strings.TrimLeft(line, " \t")
	if strings.TrimSpace(line) == "" {
		return "", nil
	}
	word, rest := line, ""
	if end := strings.IndexAny(line, " \t"); end >= 0 {
		word, rest = line[:end], line[end+1:]
	}
	name := strings.ToLower(word)

	if !a.registry.Gated(name) {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	return name, a.registry.Execute(ctx, name, rest)
}

// Notice returns the message shown under the list after the last command
func (a *App) Notice() string {
	return a.notice
}

func (a *App) report(err error) {
	if errors.ShouldLogError(err) {
		a.logger.Error("command failed", zap.Error(err))
	}
	a.notice = a.errorHandler.HandleSimple(err).Error()
}

func (a *App) redraw(ctx context.Context) error {
	model, err := view.Snapshot(ctx, a.controller)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	model.Notice = a.notice
	return a.view.Draw(model)
}

// redrawsAfter reports whether the list is drawn again after the command
func redrawsAfter(name string) bool {
	switch name {
	case "help", "status":
		return false
	default:
		return true
	}
}

// resolveTaskID maps a 1-based row number onto the id of the task shown there
func (a *App) resolveTaskID(ctx context.Context, arg string) (string, error) {
	row, err := parseRowNumber(arg)
	if err != nil {
		return "", err
	}

	tasks, err := a.controller.Tasks(ctx)
	if err != nil {
		return "", err
	}
	if row > len(tasks) {
		return "", errors.NewInvalidInputError("row", arg, fmt.Sprintf("no task at row %d", row))
	}
	return tasks[row-1].ID, nil
}

// parseRowNumber parses a 1-based row number
func parseRowNumber(arg string) (int, error) {
	row, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.NewInvalidInputError("row", arg, "row must be a number")
	}
	if row < 1 {
		return 0, errors.NewInvalidInputError("row", arg, "row must be at least 1")
	}
	return row, nil
}
