package services

import (
	"context"

	"daily-tracker/internal/domain"
	"daily-tracker/internal/errors"
	"daily-tracker/internal/validation"

	"github.com/google/uuid"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	gateway       *Gateway
	coordinator   *Coordinator
	rollover      RolloverService
	taskValidator *validation.TaskValidator
	habitLabel    string
	habitTaskID   string
	newID         func() string
}

// NewTaskService creates a new TaskService instance
func NewTaskService(gateway *Gateway, coordinator *Coordinator, rollover RolloverService, taskValidator *validation.TaskValidator, habitLabel, habitTaskID string) TaskService {
	return &taskServiceImpl{
		gateway:       gateway,
		coordinator:   coordinator,
		rollover:      rollover,
		taskValidator: taskValidator,
		habitLabel:    habitLabel,
		habitTaskID:   habitTaskID,
		newID:         uuid.NewString,
	}
}

// Load runs the rollover, then seeds the habit task if it is missing.
func (t *taskServiceImpl) Load(ctx context.Context) (*LoadResult, error) {
	rollover, err := t.rollover.MaybeRollover(ctx)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{Rollover: rollover}
	err = t.coordinator.Do(func() error {
		tasks, err := t.gateway.Tasks(ctx)
		if err != nil {
			return err
		}
		result.Tasks, result.Seeded = domain.EnsureHabitTask(tasks, t.habitLabel, t.habitTaskID)
		if !result.Seeded {
			return nil
		}
		return t.gateway.SaveTasks(ctx, result.Tasks)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListTasks returns the active list in stored order
func (t *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	err := t.coordinator.Do(func() error {
		tasks = t.gateway.TasksOrEmpty(ctx)
		return nil
	})
	return tasks, err
}

// ListCategory returns one category with priority tasks first
func (t *taskServiceImpl) ListCategory(ctx context.Context, category domain.Category) ([]domain.Task, error) {
	if !category.IsValid() {
		return nil, errors.NewInvalidInputError("category", category, "must be one of work, projects, life, own")
	}
	tasks, err := t.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SortByPriority(domain.TasksInCategory(tasks, category)), nil
}

// AddTask appends a new task to the active list
func (t *taskServiceImpl) AddTask(ctx context.Context, category string, text string) (*domain.Task, error) {
	c, err := t.taskValidator.ParseCategory(category)
	if err != nil {
		return nil, t.validationError(err)
	}
	trimmed, err := t.taskValidator.GetValidTaskText(text)
	if err != nil {
		return nil, t.validationError(err)
	}

	task := domain.NewTask(t.newID(), trimmed, c)
	err = t.update(ctx, func(tasks []domain.Task) ([]domain.Task, error) {
		return append(tasks, task), nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ToggleTask flips the completed flag, carrying any subtasks along
func (t *taskServiceImpl) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	return t.mutateTask(ctx, id, func(task *domain.Task) error {
		task.ToggleCompleted()
		return nil
	})
}

// ToggleExpand flips the expanded flag
func (t *taskServiceImpl) ToggleExpand(ctx context.Context, id string) (*domain.Task, error) {
	return t.mutateTask(ctx, id, func(task *domain.Task) error {
		task.IsExpanded = !task.IsExpanded
		return nil
	})
}

// TogglePriority flips the priority flag
func (t *taskServiceImpl) TogglePriority(ctx context.Context, id string) (*domain.Task, error) {
	return t.mutateTask(ctx, id, func(task *domain.Task) error {
		task.Priority = !task.Priority
		return nil
	})
}

// DeleteTask removes a task and its subtasks
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return t.validationError(err)
	}
	return t.update(ctx, func(tasks []domain.Task) ([]domain.Task, error) {
		i := domain.TaskIndex(tasks, id)
		if i < 0 {
			return nil, errors.NewNotFoundError("task", id)
		}
		return append(tasks[:i], tasks[i+1:]...), nil
	})
}

// AddSubtask appends a subtask; the parent is no longer complete
func (t *taskServiceImpl) AddSubtask(ctx context.Context, taskID string, text string) (*domain.Task, error) {
	trimmed, err := t.taskValidator.GetValidTaskText(text)
	if err != nil {
		return nil, t.validationError(err)
	}

	return t.mutateTask(ctx, taskID, func(task *domain.Task) error {
		task.Subtasks = append(task.Subtasks, domain.SubTask{ID: t.newID(), Text: trimmed})
		task.SyncCompletion()
		return nil
	})
}

// ToggleSubtask flips a subtask and recomputes the parent
func (t *taskServiceImpl) ToggleSubtask(ctx context.Context, taskID, subtaskID string) (*domain.Task, error) {
	return t.mutateSubtask(ctx, taskID, subtaskID, func(task *domain.Task, i int) {
		task.Subtasks[i].Completed = !task.Subtasks[i].Completed
		task.SyncCompletion()
	})
}

// ToggleSubtaskPriority flips a subtask flag; the parent is flagged while any subtask is
func (t *taskServiceImpl) ToggleSubtaskPriority(ctx context.Context, taskID, subtaskID string) (*domain.Task, error) {
	return t.mutateSubtask(ctx, taskID, subtaskID, func(task *domain.Task, i int) {
		task.Subtasks[i].Priority = !task.Subtasks[i].Priority
		task.SyncPriority()
	})
}

// DeleteSubtask removes a subtask and recomputes the parent if any remain
func (t *taskServiceImpl) DeleteSubtask(ctx context.Context, taskID, subtaskID string) (*domain.Task, error) {
	return t.mutateSubtask(ctx, taskID, subtaskID, func(task *domain.Task, i int) {
		task.Subtasks = append(task.Subtasks[:i], task.Subtasks[i+1:]...)
		task.SyncCompletion()
	})
}

func (t *taskServiceImpl) mutateSubtask(ctx context.Context, taskID, subtaskID string, fn func(task *domain.Task, i int)) (*domain.Task, error) {
	if err := t.taskValidator.ValidateSubtaskRef(taskID, subtaskID); err != nil {
		return nil, t.validationError(err)
	}
	return t.mutateTask(ctx, taskID, func(task *domain.Task) error {
		i := task.SubtaskIndex(subtaskID)
		if i < 0 {
			return errors.NewNotFoundError("subtask", subtaskID)
		}
		fn(task, i)
		return nil
	})
}

// mutateTask applies fn to one task and writes the whole list back.
func (t *taskServiceImpl) mutateTask(ctx context.Context, id string, fn func(task *domain.Task) error) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, t.validationError(err)
	}

	var updated domain.Task
	err := t.update(ctx, func(tasks []domain.Task) ([]domain.Task, error) {
		i := domain.TaskIndex(tasks, id)
		if i < 0 {
			return nil, errors.NewNotFoundError("task", id)
		}
		if err := fn(&tasks[i]); err != nil {
			return nil, err
		}
		updated = tasks[i].Clone()
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// update is the single read-modify-write path for the active list. The read
// is strict so a damaged list is never overwritten.
func (t *taskServiceImpl) update(ctx context.Context, fn func(tasks []domain.Task) ([]domain.Task, error)) error {
	return t.coordinator.Do(func() error {
		tasks, err := t.gateway.Tasks(ctx)
		if err != nil {
			return err
		}
		tasks, err = fn(tasks)
		if err != nil {
			return err
		}
		return t.gateway.SaveTasks(ctx, tasks)
	})
}

func (t *taskServiceImpl) validationError(err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return ve.ToAppError()
	}
	return errors.NewValidationError(err.Error(), err)
}
