package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"daily-tracker/internal/config"
	"daily-tracker/internal/domain"
)

const defaultTaskTextMaxLength = 255

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a validator that uses the default limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength reports whether the trimmed string has at most max runes
func (v *Validator) IsValidStringLength(s string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= max
}

// IsValidTaskTextLength checks the text against the configured maximum
func (v *Validator) IsValidTaskTextLength(text string) bool {
	return v.IsValidStringLength(text, v.TaskTextMaxLength())
}

// HasNoControlCharacters rejects newlines, tabs and other control runes.
// Any printable text, emoji included, is allowed.
func (v *Validator) HasNoControlCharacters(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// IsValidID reports whether id is non-empty and has no whitespace
func (v *Validator) IsValidID(id string) bool {
	if id == "" {
		return false
	}
	return strings.IndexFunc(id, unicode.IsSpace) < 0
}

// IsValidMood checks the 1..5 mood scale
func (v *Validator) IsValidMood(mood int) bool {
	return domain.IsValidMood(mood)
}

// IsValidCalendarDate checks the YYYY-MM-DD layout
func (v *Validator) IsValidCalendarDate(s string) bool {
	_, err := domain.ParseCalendarDate(s)
	return err == nil
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TaskTextMaxLength returns the configured maximum task text length or the default
func (v *Validator) TaskTextMaxLength() int {
	if v.config != nil && v.config.Validation.TaskTextMaxLength > 0 {
		return v.config.Validation.TaskTextMaxLength
	}
	return defaultTaskTextMaxLength
}
