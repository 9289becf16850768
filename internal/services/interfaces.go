package services

import (
	"context"
	"encoding/json"

	"daily-tracker/internal/domain"
)

// RolloverResult describes what a MaybeRollover call did.
type RolloverResult struct {
	Date      domain.CalendarDate  `json:"date"`
	Performed bool                 `json:"performed"`
	Archived  int                  `json:"archived"`
	Kept      int                  `json:"kept"`
	Reset     int                  `json:"reset"`
	History   *domain.DailyHistory `json:"history,omitempty"`
}

// LoadResult is the state handed to a front end on activation.
type LoadResult struct {
	Rollover *RolloverResult `json:"rollover"`
	Seeded   bool            `json:"seeded"`
	Tasks    []domain.Task   `json:"tasks"`
}

// DailyProgress is today's overall progress.
type DailyProgress struct {
	Date           domain.CalendarDate `json:"date"`
	Completed      int                 `json:"completed"`
	Total          int                 `json:"total"`
	Percentage     float64             `json:"percentage"`
	HabitCompleted bool                `json:"habit_completed"`
	Mood           *int                `json:"mood,omitempty"`
}

// CategorySummary is the per-category line on the start screen.
type CategorySummary struct {
	Category    domain.Category `json:"category"`
	TaskCount   int             `json:"task_count"`
	Progress    float64         `json:"progress"`
	HasPriority bool            `json:"has_priority"`
}

// PriorityReminder lists unfinished priority tasks for reminder text.
// Summary is empty when there are none.
type PriorityReminder struct {
	Tasks   []domain.Task `json:"tasks"`
	Summary string        `json:"summary"`
}

// ImportResult reports which keys an import wrote.
type ImportResult struct {
	Keys []string `json:"keys"`
}

// RolloverService runs the once-per-day transition
type RolloverService interface {
	MaybeRollover(ctx context.Context) (*RolloverResult, error)
}

// TaskService handles the active task list
type TaskService interface {
	// Activation
	Load(ctx context.Context) (*LoadResult, error)

	// Queries
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListCategory(ctx context.Context, category domain.Category) ([]domain.Task, error)

	// Task mutations
	AddTask(ctx context.Context, category string, text string) (*domain.Task, error)
	ToggleTask(ctx context.Context, id string) (*domain.Task, error)
	ToggleExpand(ctx context.Context, id string) (*domain.Task, error)
	TogglePriority(ctx context.Context, id string) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Subtask mutations return the updated parent
	AddSubtask(ctx context.Context, taskID string, text string) (*domain.Task, error)
	ToggleSubtask(ctx context.Context, taskID, subtaskID string) (*domain.Task, error)
	ToggleSubtaskPriority(ctx context.Context, taskID, subtaskID string) (*domain.Task, error)
	DeleteSubtask(ctx context.Context, taskID, subtaskID string) (*domain.Task, error)
}

// MoodService handles the daily mood log
type MoodService interface {
	LogMood(ctx context.Context, mood int) (*domain.MoodLog, error)
	MoodForDate(ctx context.Context, date domain.CalendarDate) (*domain.MoodLog, error)
	ListMoodLogs(ctx context.Context) ([]domain.MoodLog, error)
}

// ReportingService handles the derived views
type ReportingService interface {
	DailyProgress(ctx context.Context) (*DailyProgress, error)
	CategorySummaries(ctx context.Context) ([]CategorySummary, error)
	History(ctx context.Context, limit int) ([]domain.DailyHistory, error)
	Archive(ctx context.Context) ([]domain.ArchivedTask, error)
	ClearArchive(ctx context.Context) error
	DeleteArchivedTask(ctx context.Context, id string) error
	PriorityReminders(ctx context.Context) (*PriorityReminder, error)
}

// ImportService loads exported key/value data
type ImportService interface {
	Import(ctx context.Context, data map[string]json.RawMessage) (*ImportResult, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	RolloverService  RolloverService
	TaskService      TaskService
	MoodService      MoodService
	ReportingService ReportingService
	ImportService    ImportService
}
