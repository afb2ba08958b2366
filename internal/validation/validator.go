package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"locked-todo/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length in runes is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidTaskTextLength checks if a task text length is within configured limits
func (v *Validator) IsValidTaskTextLength(text string) bool {
	return v.IsValidStringLength(text, 1, v.getTaskTextMaxLength())
}

// HasControlCharacters reports whether s contains newlines, tabs or other control characters
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// IsValidTaskID checks if a task ID is a well-formed identifier
func (v *Validator) IsValidTaskID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// NormalizeText trims surrounding whitespace
func (v *Validator) NormalizeText(s string) string {
	return strings.TrimSpace(s)
}

// TaskTextMaxLength returns the configured maximum task text length
func (v *Validator) TaskTextMaxLength() int {
	return v.getTaskTextMaxLength()
}

// getTaskTextMaxLength returns configured maximum task text length or default
func (v *Validator) getTaskTextMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TaskTextMaxLength
	}
	return 255 // Default maximum
}
