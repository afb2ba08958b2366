package validation

import (
	"locked-todo/internal/config"
	"locked-todo/internal/domain"
)

// TaskValidator checks task text and ids before they reach the gate
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a task validator with the default length limit
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateTaskText validates the text of a new task. Blank text reports
// only the required error.
func (tv *TaskValidator) ValidateTaskText(text string) error {
	text = tv.validator.NormalizeText(text)

	ve := NewValidationError()
	if !tv.validator.IsNonEmptyString(text) {
		ve.AddRequiredError(FieldTaskText)
		return ve
	}
	if !tv.validator.IsValidTaskTextLength(text) {
		ve.AddInvalidLengthError(FieldTaskText, text, tv.validator.TaskTextMaxLength())
	}
	if tv.validator.HasControlCharacters(text) {
		ve.AddInvalidCharacterError(FieldTaskText, text)
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateTaskID validates a task identifier
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if tv.validator.IsValidTaskID(id) {
		return nil
	}
	ve := NewValidationError()
	ve.AddInvalidFormatError(FieldTaskID, id, "uuid")
	return ve
}

// ValidateTask validates both fields of a task
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	ve := NewValidationError()
	ve.Merge(tv.ValidateTaskText(task.Text))
	ve.Merge(tv.ValidateTaskID(task.ID))

	if ve.HasErrors() {
		return ve
	}
	return nil
}
