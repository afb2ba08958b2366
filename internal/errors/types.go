package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypeAuthUnavailable
	ErrorTypeAuthDenied
	ErrorTypeBusy
)

var errorTypeInfo = map[ErrorType]struct {
	name string
	code string
}{
	ErrorTypeValidation:      {"validation", "VALIDATION_FAILED"},
	ErrorTypeNotFound:        {"not_found", "NOT_FOUND"},
	ErrorTypeDatabase:        {"database", "DATABASE_ERROR"},
	ErrorTypeInvalidInput:    {"invalid_input", "INVALID_INPUT"},
	ErrorTypeTimeout:         {"timeout", "TIMEOUT"},
	ErrorTypeAuthUnavailable: {"auth_unavailable", "AUTH_UNAVAILABLE"},
	ErrorTypeAuthDenied:      {"auth_denied", "AUTH_DENIED"},
	ErrorTypeBusy:            {"busy", "BUSY"},
}

// String returns the string representation of the error type
func (et ErrorType) String() string {
	if info, ok := errorTypeInfo[et]; ok {
		return info.name
	}
	return "unknown"
}

// Code returns the default machine-readable code for the error type
func (et ErrorType) Code() string {
	if info, ok := errorTypeInfo[et]; ok {
		return info.code
	}
	return "UNKNOWN_ERROR"
}

// AppError represents a structured application error. Context carries
// the details a caller may want to surface, such as the intent and the
// authentication outcome of a denied mutation.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	msg := e.Type.String() + ": " + e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError of the same type and code
func (e *AppError) Is(target error) bool {
	appErr, ok := target.(*AppError)
	return ok && e.Type == appErr.Type && e.Code == appErr.Code
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// ContextString returns a string context value, or "" when absent
func (e *AppError) ContextString(key string) string {
	value, _ := e.Context[key].(string)
	return value
}
