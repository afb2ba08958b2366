package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Fields checked by the task validator
const (
	FieldTaskText = "task_text"
	FieldTaskID   = "task_id"
)

// ValidationErrorType classifies a field error
type ValidationErrorType string

const (
	ErrorTypeRequired         ValidationErrorType = "required"
	ErrorTypeInvalidFormat    ValidationErrorType = "invalid_format"
	ErrorTypeInvalidLength    ValidationErrorType = "invalid_length"
	ErrorTypeInvalidCharacter ValidationErrorType = "invalid_character"
)

// fieldLabels name fields the way the shell talks about them
var fieldLabels = map[string]string{
	FieldTaskText: "TODO item",
	FieldTaskID:   "task id",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// FieldError is a single problem with one field. Message is ready to show.
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

func (fe *FieldError) Error() string {
	return fe.Field + ": " + fe.Message
}

// ValidationError collects every field error found in one check
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Errors: make([]FieldError, 0)}
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation error"
	case 1:
		return ve.Errors[0].Error()
	}
	parts := make([]string, len(ve.Errors))
	for i := range ve.Errors {
		parts[i] = ve.Errors[i].Error()
	}
	return "multiple validation errors: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// HasErrors returns true if any field error was recorded
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Merge appends the field errors of other, if any
func (ve *ValidationError) Merge(other error) {
	var o *ValidationError
	if errors.As(other, &o) {
		ve.Errors = append(ve.Errors, o.Errors...)
	}
}

func (ve *ValidationError) add(field string, errorType ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Type: errorType, Message: message, Value: value})
}

// AddRequiredError records a missing value, e.g. "Please enter a TODO item."
func (ve *ValidationError) AddRequiredError(field string) {
	ve.add(field, ErrorTypeRequired, fmt.Sprintf("Please enter a %s.", label(field)), nil)
}

// AddInvalidFormatError records a value that does not parse as format
func (ve *ValidationError) AddInvalidFormatError(field string, value interface{}, format string) {
	ve.add(field, ErrorTypeInvalidFormat, fmt.Sprintf("%q is not a valid %s (expected %s).", value, label(field), format), value)
}

// AddInvalidLengthError records a value longer than max runes
func (ve *ValidationError) AddInvalidLengthError(field string, value interface{}, max int) {
	ve.add(field, ErrorTypeInvalidLength, fmt.Sprintf("A %s can be at most %d characters long.", label(field), max), value)
}

// AddInvalidCharacterError records a value containing control characters
func (ve *ValidationError) AddInvalidCharacterError(field string, value interface{}) {
	ve.add(field, ErrorTypeInvalidCharacter, fmt.Sprintf("A %s must fit on one line.", label(field)), value)
}

// GetUserFriendlyMessage joins the field messages into one notice line
func (ve *ValidationError) GetUserFriendlyMessage() string {
	if len(ve.Errors) == 0 {
		return "Input validation failed"
	}
	messages := make([]string, len(ve.Errors))
	for i := range ve.Errors {
		messages[i] = ve.Errors[i].Message
	}
	return strings.Join(messages, " ")
}
