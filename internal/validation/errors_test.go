package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Messages(t *testing.T) {
	tests := []struct {
		name     string
		build    func(ve *ValidationError)
		errType  ValidationErrorType
		message  string
		errorStr string
	}{
		{
			name:     "required task text",
			build:    func(ve *ValidationError) { ve.AddRequiredError(FieldTaskText) },
			errType:  ErrorTypeRequired,
			message:  "Please enter a TODO item.",
			errorStr: "task_text: Please enter a TODO item.",
		},
		{
			name:     "too long",
			build:    func(ve *ValidationError) { ve.AddInvalidLengthError(FieldTaskText, "abcdef", 5) },
			errType:  ErrorTypeInvalidLength,
			message:  "A TODO item can be at most 5 characters long.",
			errorStr: "task_text: A TODO item can be at most 5 characters long.",
		},
		{
			name:     "control characters",
			build:    func(ve *ValidationError) { ve.AddInvalidCharacterError(FieldTaskText, "a\nb") },
			errType:  ErrorTypeInvalidCharacter,
			message:  "A TODO item must fit on one line.",
			errorStr: "task_text: A TODO item must fit on one line.",
		},
		{
			name:     "bad id",
			build:    func(ve *ValidationError) { ve.AddInvalidFormatError(FieldTaskID, "42", "uuid") },
			errType:  ErrorTypeInvalidFormat,
			message:  `"42" is not a valid task id (expected uuid).`,
			errorStr: `task_id: "42" is not a valid task id (expected uuid).`,
		},
		{
			name:     "unlabelled field",
			build:    func(ve *ValidationError) { ve.AddRequiredError("row") },
			errType:  ErrorTypeRequired,
			message:  "Please enter a row.",
			errorStr: "row: Please enter a row.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := NewValidationError()
			tt.build(ve)

			require.Len(t, ve.Errors, 1)
			assert.Equal(t, tt.errType, ve.Errors[0].Type)
			assert.Equal(t, tt.message, ve.Errors[0].Message)
			assert.Equal(t, tt.message, ve.GetUserFriendlyMessage())
			assert.EqualError(t, ve, tt.errorStr)
		})
	}
}

func TestValidationError_Empty(t *testing.T) {
	ve := NewValidationError()

	assert.False(t, ve.HasErrors())
	assert.NotNil(t, ve.Errors)
	assert.EqualError(t, ve, "validation error")
	assert.Equal(t, "Input validation failed", ve.GetUserFriendlyMessage())
}

func TestValidationError_Multiple(t *testing.T) {
	ve := NewValidationError()
	ve.AddInvalidLengthError(FieldTaskText, "x", 3)
	ve.AddInvalidCharacterError(FieldTaskText, "x")

	assert.True(t, ve.HasErrors())
	assert.EqualError(t, ve, "multiple validation errors: "+
		"task_text: A TODO item can be at most 3 characters long.; task_text: A TODO item must fit on one line.")
	assert.Equal(t, "A TODO item can be at most 3 characters long. A TODO item must fit on one line.",
		ve.GetUserFriendlyMessage())
}

func TestValidationError_Merge(t *testing.T) {
	ve := NewValidationError()
	other := NewValidationError()
	other.AddRequiredError(FieldTaskText)

	ve.Merge(nil)
	ve.Merge(errors.New("not a validation error"))
	assert.False(t, ve.HasErrors())

	ve.Merge(fmt.Errorf("wrapped: %w", other))
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, FieldTaskText, ve.Errors[0].Field)
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError(FieldTaskText)

	assert.True(t, IsValidationError(ve))
	assert.True(t, IsValidationError(fmt.Errorf("add: %w", ve)))
	assert.False(t, IsValidationError(&FieldError{Field: FieldTaskText}))
	assert.False(t, IsValidationError(errors.New("plain")))
}
