package validation

import (
	"daily-tracker/internal/config"
	"daily-tracker/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator with configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateText validates task or subtask text under the given field name
func (tv *TaskValidator) ValidateText(field, text string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(text)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError(field)
		return validationError
	}

	if !tv.validator.IsValidTaskTextLength(trimmed) {
		validationError.AddInvalidLengthError(field, trimmed, tv.validator.TaskTextMaxLength())
	}

	if !tv.validator.HasNoControlCharacters(trimmed) {
		validationError.AddInvalidCharacterError(field, trimmed)
	}

	return validationError.OrNil()
}

// GetValidTaskText returns the trimmed text if valid
func (tv *TaskValidator) GetValidTaskText(text string) (string, error) {
	if err := tv.ValidateText("text", text); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(text), nil
}

// ParseCategory validates a category name given on input
func (tv *TaskValidator) ParseCategory(input string) (domain.Category, error) {
	c, err := domain.ParseCategory(input)
	if err != nil {
		validationError := NewValidationError()
		if !tv.validator.IsNonEmptyString(input) {
			validationError.AddRequiredError("category")
		} else {
			validationError.AddInvalidValueError("category", input, "must be one of work, projects, life, own")
		}
		return "", validationError
	}
	return c, nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id string) error {
	return tv.validateID("task_id", id)
}

// ValidateSubtaskRef validates a task ID and subtask ID pair
func (tv *TaskValidator) ValidateSubtaskRef(taskID, subtaskID string) error {
	validationError := NewValidationError()
	validationError.Merge(tv.validateID("task_id", taskID))
	validationError.Merge(tv.validateID("subtask_id", subtaskID))
	return validationError.OrNil()
}

func (tv *TaskValidator) validateID(field, id string) error {
	if tv.validator.IsValidID(id) {
		return nil
	}
	validationError := NewValidationError()
	if id == "" {
		validationError.AddRequiredError(field)
	} else {
		validationError.AddInvalidFormatError(field, id, "non-empty id without spaces")
	}
	return validationError
}

// ValidateTask validates an imported domain.Task with its subtasks
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	validationError := NewValidationError()

	validationError.Merge(tv.validateID("task_id", task.ID))
	validationError.Merge(tv.ValidateText("text", task.Text))

	if task.Category != "" && !task.Category.IsValid() {
		validationError.AddInvalidValueError("category", task.Category, "must be one of work, projects, life, own")
	}

	for _, st := range task.Subtasks {
		validationError.Merge(tv.validateID("subtask_id", st.ID))
		validationError.Merge(tv.ValidateText("subtask_text", st.Text))
	}

	return validationError.OrNil()
}
