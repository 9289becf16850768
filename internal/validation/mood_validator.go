package validation

import "daily-tracker/internal/domain"

// MoodValidator validates mood scores and the dates they are logged under
type MoodValidator struct {
	validator *Validator
}

// NewMoodValidator creates a new mood validator
func NewMoodValidator() *MoodValidator {
	return &MoodValidator{validator: NewValidator()}
}

// ValidateMood checks the score is on the 1..5 scale
func (mv *MoodValidator) ValidateMood(mood int) error {
	if mv.validator.IsValidMood(mood) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidRangeError("mood", mood, domain.MinMood, domain.MaxMood)
	return validationError
}

// ParseDate validates a YYYY-MM-DD date given on input
func (mv *MoodValidator) ParseDate(input string) (domain.CalendarDate, error) {
	trimmed := mv.validator.TrimAndValidateString(input)
	if !mv.validator.IsNonEmptyString(trimmed) {
		validationError := NewValidationError()
		validationError.AddRequiredError("date")
		return "", validationError
	}
	if !mv.validator.IsValidCalendarDate(trimmed) {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("date", input, domain.DateLayout)
		return "", validationError
	}
	return domain.CalendarDate(trimmed), nil
}

// ValidateMoodLog validates an imported mood log entry
func (mv *MoodValidator) ValidateMoodLog(log domain.MoodLog) error {
	validationError := NewValidationError()
	if _, err := mv.ParseDate(string(log.Date)); err != nil {
		validationError.Merge(err)
	}
	validationError.Merge(mv.ValidateMood(log.Mood))
	return validationError.OrNil()
}
