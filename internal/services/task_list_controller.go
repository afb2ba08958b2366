package services

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"locked-todo/internal/auth"
	"locked-todo/internal/config"
	"locked-todo/internal/domain"
	"locked-todo/internal/errors"
	"locked-todo/internal/repository/sqlite"
	"locked-todo/internal/validation"
)

// taskListControllerImpl implements the TaskListController interface
type taskListControllerImpl struct {
	repo          sqlite.Repository
	gate          Authenticator
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	logger        *zap.Logger

	// slot admits one intent at a time from validation to apply
	slot   *semaphore.Weighted
	policy string

	mu        sync.Mutex
	cursor    domain.EditCursor
	draft     string
	state     IntentState
	listeners []Listener
}

// NewTaskListController creates a controller over repo gated by gate
func NewTaskListController(repo sqlite.Repository, gate Authenticator, cfg *config.Config, logger *zap.Logger) TaskListController {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &taskListControllerImpl{
		repo:          repo,
		gate:          gate,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidatorWithConfig(cfg),
		logger:        logger.Named("controller"),
		slot:          semaphore.NewWeighted(1),
		policy:        cfg.Controller.IntentPolicy,
		cursor:        domain.NewEditCursor(),
		state:         StateIdle,
	}
}

// Add appends a task after authentication. Blank text never reaches the
// gate; otherwise the text is stored exactly as typed.
func (c *taskListControllerImpl) Add(ctx context.Context, text string) (*domain.Task, error) {
	if err := c.validateTaskText(text); err != nil {
		return nil, err
	}

	var created domain.Task
	err := c.runIntent(ctx, IntentAdd, "", func(ctx context.Context) error {
		task := domain.NewTask(text)
		if err := c.taskValidator.ValidateTask(task); err != nil {
			return err
		}
		dbTask := c.mapper.Task.ToDatabase(task)
		if err := c.repo.CreateTask(ctx, &dbTask); err != nil {
			return err
		}
		created = task

		c.mu.Lock()
		c.draft = ""
		c.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Toggle flips the completed flag of the task with id
func (c *taskListControllerImpl) Toggle(ctx context.Context, id string) error {
	return c.runIntent(ctx, IntentToggle, id, func(ctx context.Context) error {
		dbTask, found, err := c.findTask(ctx, id)
		if err != nil || !found {
			return err
		}

		task := c.mapper.Task.FromDatabase(*dbTask).Toggle()
		updated := c.mapper.Task.ToDatabase(task)
		return c.repo.UpdateTask(ctx, &updated)
	})
}

// BeginEdit points the edit cursor at id once authenticated. The id is not
// looked up; a cursor on a missing task simply matches no row.
func (c *taskListControllerImpl) BeginEdit(ctx context.Context, id string) error {
	return c.runIntent(ctx, IntentEdit, id, func(ctx context.Context) error {
		c.mu.Lock()
		c.cursor = c.cursor.Set(id)
		c.mu.Unlock()
		return nil
	})
}

// Save replaces the task text and leaves edit mode. The text is stored as given.
func (c *taskListControllerImpl) Save(ctx context.Context, id string, newText string) error {
	if strings.TrimSpace(newText) == "" {
		c.logger.Debug("saving empty task text", zap.String("task_id", id))
	}

	return c.runIntent(ctx, IntentSave, id, func(ctx context.Context) error {
		dbTask, found, err := c.findTask(ctx, id)
		if err != nil {
			return err
		}
		if found {
			task := c.mapper.Task.FromDatabase(*dbTask)
			task.Text = newText
			updated := c.mapper.Task.ToDatabase(task)
			if err := c.repo.UpdateTask(ctx, &updated); err != nil {
				return err
			}
		}

		c.mu.Lock()
		c.cursor = c.cursor.Clear()
		c.mu.Unlock()
		return nil
	})
}

// Delete removes the task with id; deleting the task under edit leaves edit mode
func (c *taskListControllerImpl) Delete(ctx context.Context, id string) error {
	return c.runIntent(ctx, IntentDelete, id, func(ctx context.Context) error {
		err := c.repo.DeleteTask(ctx, id)
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			c.logger.Debug("delete of unknown task ignored", zap.String("task_id", id))
			return nil
		}
		if err != nil {
			return err
		}

		c.mu.Lock()
		if c.cursor.IsEditing(id) {
			c.cursor = c.cursor.Clear()
		}
		c.mu.Unlock()
		return nil
	})
}

func (c *taskListControllerImpl) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *taskListControllerImpl) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// SubmitDraft adds the current draft as a new task
func (c *taskListControllerImpl) SubmitDraft(ctx context.Context) (*domain.Task, error) {
	return c.Add(ctx, c.Draft())
}

// Tasks returns the list in insertion order
func (c *taskListControllerImpl) Tasks(ctx context.Context) ([]domain.Task, error) {
	dbTasks, err := c.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return c.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

func (c *taskListControllerImpl) EditCursor() domain.EditCursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

func (c *taskListControllerImpl) State() IntentState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *taskListControllerImpl) Capability() auth.Capability {
	return c.gate.CheckCapability()
}

func (c *taskListControllerImpl) OnChange(listener Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
}

// validateTaskText checks text for a new task; blank and length checks
// look at the trimmed text
func (c *taskListControllerImpl) validateTaskText(text string) error {
	err := c.taskValidator.ValidateTaskText(text)
	if err == nil {
		return nil
	}
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return errors.NewValidationError(validationErr.GetUserFriendlyMessage(), err)
	}
	return errors.NewValidationError("invalid task text", err)
}

// findTask looks a task up, reporting unknown ids as not found rather than an error
func (c *taskListControllerImpl) findTask(ctx context.Context, id string) (*sqlite.Task, bool, error) {
	dbTask, err := c.repo.GetTask(ctx, id)
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		c.logger.Debug("intent targets unknown task", zap.String("task_id", id))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return dbTask, true, nil
}

// runIntent takes the slot, authenticates and applies. Denial leaves every
// piece of controller state untouched.
func (c *taskListControllerImpl) runIntent(ctx context.Context, intent Intent, taskID string, apply func(context.Context) error) error {
	if err := c.acquire(ctx, intent); err != nil {
		return err
	}
	defer c.slot.Release(1)

	c.transition(Event{Intent: intent, State: StateAuthenticating, TaskID: taskID})

	outcome := c.gate.Authenticate(ctx, "")
	if !outcome.Succeeded() {
		c.logger.Info("intent denied",
			zap.String("intent", string(intent)),
			zap.String("task_id", taskID),
			zap.Stringer("outcome", outcome))
		c.transition(Event{Intent: intent, State: StateDenied, TaskID: taskID, Outcome: outcome})
		c.transition(Event{Intent: intent, State: StateIdle, TaskID: taskID, Outcome: outcome})
		return outcome.Err(string(intent))
	}

	if err := apply(ctx); err != nil {
		c.logger.Error("failed to apply intent",
			zap.String("intent", string(intent)),
			zap.String("task_id", taskID),
			zap.Error(err))
		c.transition(Event{Intent: intent, State: StateIdle, TaskID: taskID, Outcome: outcome})
		return err
	}

	c.logger.Debug("intent applied", zap.String("intent", string(intent)), zap.String("task_id", taskID))
	c.transition(Event{Intent: intent, State: StateApplied, TaskID: taskID, Outcome: outcome})
	c.transition(Event{Intent: intent, State: StateIdle, TaskID: taskID, Outcome: outcome})
	return nil
}

// acquire takes the single authentication slot according to the intent policy
func (c *taskListControllerImpl) acquire(ctx context.Context, intent Intent) error {
	if c.policy == config.IntentPolicyQueue {
		if err := c.slot.Acquire(ctx, 1); err != nil {
			return errors.NewTimeoutError("wait for authentication", err)
		}
		return nil
	}

	if !c.slot.TryAcquire(1) {
		c.logger.Debug("intent rejected while busy", zap.String("intent", string(intent)))
		return errors.NewBusyError(string(intent))
	}
	return nil
}

func (c *taskListControllerImpl) transition(event Event) {
	c.mu.Lock()
	c.state = event.State
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}
