package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	apperrors "locked-todo/internal/errors"
	"locked-todo/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "add task",
			err:       apperrors.NewValidationError("Please enter a TODO item.", nil),
			expected:  "failed to add task: Please enter a TODO item.",
		},
		{
			name:      "Auth unavailable",
			operation: "toggle task",
			err:       apperrors.NewAuthUnavailableError("toggle", "no_hardware"),
			expected:  "failed to toggle task: Authentication is not available on this device.",
		},
		{
			name:      "Auth denied",
			operation: "delete task",
			err:       apperrors.NewAuthDeniedError("delete", "user_cancelled", nil),
			expected:  "failed to delete task: Authentication failed.",
		},
		{
			name:      "Auth lockout",
			operation: "delete task",
			err:       apperrors.NewAuthDeniedError("delete", "lockout", nil),
			expected:  "failed to delete task: Authentication failed. Too many attempts.",
		},
		{
			name:      "Database error",
			operation: "save task",
			err:       apperrors.NewDatabaseError("insert", errors.New("disk I/O")),
			expected:  "failed to save task: A storage error occurred. Please try again.",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			assert.EqualError(t, result, tt.expected)
		})
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Busy error",
			err:      apperrors.NewBusyError("add"),
			expected: "Please finish the pending authentication first.",
		},
		{
			name:     "Invalid input",
			err:      apperrors.NewInvalidInputError("row", "9", "no task at row 9"),
			expected: "invalid input for row: no task at row 9",
		},
		{
			name: "Field validation error",
			err: &validation.ValidationError{
				Errors: []validation.FieldError{
					{Field: "task_text", Message: "Please enter a TODO item."},
				},
			},
			expected: "Please enter a TODO item.",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.HandleSimple(tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name        string
		err         error
		validation  bool
		denied      bool
		unavailable bool
	}{
		{
			name:       "AppError validation",
			err:        apperrors.NewValidationError("invalid input", nil),
			validation: true,
		},
		{
			name: "Field validation error",
			err: &validation.ValidationError{
				Errors: []validation.FieldError{{Field: "task_text", Message: "invalid"}},
			},
			validation: true,
		},
		{
			name:   "Auth denied",
			err:    apperrors.NewAuthDeniedError("add", "lockout", nil),
			denied: true,
		},
		{
			name:        "Auth unavailable",
			err:         apperrors.NewAuthUnavailableError("add", "not_enrolled"),
			unavailable: true,
		},
		{
			name: "Regular error",
			err:  errors.New("regular error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.validation, eh.IsValidationError(tt.err))
			assert.Equal(t, tt.denied, eh.IsAuthDenied(tt.err))
			assert.Equal(t, tt.unavailable, eh.IsAuthUnavailable(tt.err))
		})
	}
}

func TestErrorHandler_GetErrorCode(t *testing.T) {
	eh := NewErrorHandler()

	assert.Equal(t, "AUTH_DENIED", eh.GetErrorCode(apperrors.NewAuthDeniedError("add", "lockout", nil)))
	assert.Equal(t, "BUSY", eh.GetErrorCode(apperrors.NewBusyError("add")))
	assert.Equal(t, "UNKNOWN_ERROR", eh.GetErrorCode(errors.New("regular error")))
}

func TestErrorHandler_HandleNilError(t *testing.T) {
	eh := NewErrorHandler()

	// must not panic
	assert.Error(t, eh.Handle("test operation", nil))
}
