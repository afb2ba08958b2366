package errors

import (
	"errors"
	"fmt"
)

// newError builds an AppError with the type's default code. kv are
// alternating context keys and values.
func newError(errorType ErrorType, message string, cause error, kv ...interface{}) *AppError {
	e := &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.Code(),
		Cause:   cause,
		Context: make(map[string]interface{}, len(kv)/2),
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			e.Context[key] = kv[i+1]
		}
	}
	return e
}

// NewValidationError reports input rejected before authentication. message is shown to the user as is.
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, message, cause)
}

// NewNotFoundError reports a missing resource such as a task id
func NewNotFoundError(resource string, identifier string) *AppError {
	return newError(ErrorTypeNotFound, fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		"resource", resource, "identifier", identifier)
}

// NewDatabaseError wraps a store failure during operation
func NewDatabaseError(operation string, cause error) *AppError {
	return newError(ErrorTypeDatabase, "database operation failed: "+operation, cause,
		"operation", operation)
}

// NewInvalidInputError reports a malformed argument, e.g. a shell row number
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newError(ErrorTypeInvalidInput, fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		"field", field, "value", value, "reason", reason)
}

// NewTimeoutError reports an operation abandoned at its deadline
func NewTimeoutError(operation string, cause error) *AppError {
	return newError(ErrorTypeTimeout, "operation timed out: "+operation, cause,
		"operation", operation)
}

// NewAuthUnavailableError reports that no authentication method can be used on
// this device. outcome is the gate's detailed reason (no_hardware, not_enrolled).
func NewAuthUnavailableError(intent string, outcome string) *AppError {
	return newError(ErrorTypeAuthUnavailable, "authentication not available", nil,
		"intent", intent, "outcome", outcome)
}

// NewAuthDeniedError reports that the authentication challenge did not succeed.
func NewAuthDeniedError(intent string, outcome string, cause error) *AppError {
	return newError(ErrorTypeAuthDenied, "authentication failed", cause,
		"intent", intent, "outcome", outcome)
}

// NewBusyError reports that another intent currently holds the authentication slot.
func NewBusyError(intent string) *AppError {
	return newError(ErrorTypeBusy, fmt.Sprintf("another action is awaiting authentication, %s ignored", intent), nil,
		"intent", intent)
}

// AsAppError finds the first AppError in the chain of err
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// userMessages are shown instead of the error text. Types missing here
// carry a message already written for the user.
var userMessages = map[ErrorType]string{
	ErrorTypeAuthUnavailable: "Authentication is not available on this device.",
	ErrorTypeAuthDenied:      "Authentication failed.",
	ErrorTypeBusy:            "Please finish the pending authentication first.",
	ErrorTypeDatabase:        "A storage error occurred. Please try again.",
	ErrorTypeTimeout:         "The operation timed out. Please try again.",
}

// GetUserMessage returns the text the shell shows for err
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return appErr.Message
	}
	if message, ok := userMessages[appErr.Type]; ok {
		return message
	}
	return "An unexpected error occurred. Please try again."
}

func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err is a fault worth logging rather than
// an ordinary outcome of user interaction
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput,
		ErrorTypeAuthDenied, ErrorTypeBusy:
		return false
	default:
		return true
	}
}
