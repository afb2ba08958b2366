package cli

import (
	"fmt"

	"locked-todo/internal/auth"
	"locked-todo/internal/errors"
	"locked-todo/internal/validation"
)

// ErrorHandler provides centralized error handling for commands
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages prefixed with the operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, eh.userMessage(err))
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("%s", validationErr.GetUserFriendlyMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", eh.userMessage(err))
	}

	return err
}

// userMessage adds the lockout detail to denials; other outcomes stay generic
func (eh *ErrorHandler) userMessage(err error) string {
	message := errors.GetUserMessage(err)
	if eh.IsAuthDenied(err) {
		if outcome, ok := auth.OutcomeOf(err); ok && outcome == auth.OutcomeLockout {
			return message + " Too many attempts."
		}
	}
	return message
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsAuthDenied checks if an error is a failed authentication
func (eh *ErrorHandler) IsAuthDenied(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeAuthDenied)
}

// IsAuthUnavailable checks if authentication could not be attempted
func (eh *ErrorHandler) IsAuthUnavailable(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeAuthUnavailable)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
