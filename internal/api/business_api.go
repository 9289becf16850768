package api

import (
	"context"
	"encoding/json"

	"daily-tracker/internal/config"
	"daily-tracker/internal/domain"
	"daily-tracker/internal/repository/sqlite"
	"daily-tracker/internal/services"
)

// StatusView is everything the start screen shows.
type StatusView struct {
	Progress   *services.DailyProgress    `json:"progress"`
	Categories []services.CategorySummary `json:"categories"`
	Reminder   *services.PriorityReminder `json:"reminder"`
}

// BusinessAPI defines the operations the CLI runs against the tracker
type BusinessAPI interface {
	// ========== Lifecycle ==========

	// Load runs the daily rollover and seeds the habit task
	Load(ctx context.Context) (*services.LoadResult, error)

	// Rollover runs the daily rollover only
	Rollover(ctx context.Context) (*services.RolloverResult, error)

	// ========== Task Workflows ==========

	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListCategory(ctx context.Context, category domain.Category) ([]domain.Task, error)
	AddTask(ctx context.Context, category, text string) (*domain.Task, error)
	ToggleTask(ctx context.Context, id string) (*domain.Task, error)
	ToggleExpand(ctx context.Context, id string) (*domain.Task, error)
	TogglePriority(ctx context.Context, id string) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// ========== Subtask Workflows ==========

	AddSubtask(ctx context.Context, taskID, text string) (*domain.Task, error)
	ToggleSubtask(ctx context.Context, taskID, subtaskID string) (*domain.Task, error)
	ToggleSubtaskPriority(ctx context.Context, taskID, subtaskID string) (*domain.Task, error)
	DeleteSubtask(ctx context.Context, taskID, subtaskID string) (*domain.Task, error)

	// ========== Mood ==========

	LogMood(ctx context.Context, mood int) (*domain.MoodLog, error)

	// ========== Reporting ==========

	// GetStatus returns today's progress, category summaries and reminders
	GetStatus(ctx context.Context) (*StatusView, error)
	History(ctx context.Context, limit int) ([]domain.DailyHistory, error)
	Archive(ctx context.Context) ([]domain.ArchivedTask, error)
	ClearArchive(ctx context.Context) error
	DeleteArchivedTask(ctx context.Context, id string) error
	PriorityReminders(ctx context.Context) (*services.PriorityReminder, error)

	// ========== Data Migration ==========

	Import(ctx context.Context, data map[string]json.RawMessage) (*services.ImportResult, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
}

// New wires the services around repo. A nil clock uses the system clock.
func New(repo sqlite.Repository, cfg *config.Config, clock services.Clock) BusinessAPI {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return NewBusinessAPI(services.NewServiceContainer(repo, cfg, clock))
}

// NewBusinessAPI creates a BusinessAPI over an existing service container
func NewBusinessAPI(container *services.ServiceContainer) BusinessAPI {
	return &businessAPIImpl{services: container}
}

// ========== Lifecycle ==========

func (b *businessAPIImpl) Load(ctx context.Context) (*services.LoadResult, error) {
	return b.services.TaskService.Load(ctx)
}

func (b *businessAPIImpl) Rollover(ctx context.Context) (*services.RolloverResult, error) {
	return b.services.RolloverService.MaybeRollover(ctx)
}

// ========== Task Workflows ==========

func (b *businessAPIImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return b.services.TaskService.ListTasks(ctx)
}

func (b *businessAPIImpl) ListCategory(ctx context.Context, category domain.Category) ([]domain.Task, error) {
	return b.services.TaskService.ListCategory(ctx, category)
}

func (b *businessAPIImpl) AddTask(ctx context.Context, category, text string) (*domain.Task, error) {
	return b.services.TaskService.AddTask(ctx, category, text)
}

func (b *businessAPIImpl) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	return b.services.TaskService.ToggleTask(ctx, id)
}

func (b *businessAPIImpl) ToggleExpand(ctx context.Context, id string) (*domain.Task, error) {
	return b.services.TaskService.ToggleExpand(ctx, id)
}

func (b *businessAPIImpl) TogglePriority(ctx context.Context, id string) (*domain.Task, error) {
	return b.services.TaskService.TogglePriority(ctx, id)
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, id string) error {
	return b.services.TaskService.DeleteTask(ctx, id)
}

// ========== Subtask Workflows ==========

func (b *businessAPIImpl) AddSubtask(ctx context.Context, taskID, text string) (*domain.Task, error) {
	return b.services.TaskService.AddSubtask(ctx, taskID, text)
}

func (b *businessAPIImpl) ToggleSubtask(ctx context.Context, taskID, subtaskID string) (*domain.Task, error) {
	return b.services.TaskService.ToggleSubtask(ctx, taskID, subtaskID)
}

func (b *businessAPIImpl) ToggleSubtaskPriority(ctx context.Context, taskID, subtaskID string) (*domain.Task, error) {
	return b.services.TaskService.ToggleSubtaskPriority(ctx, taskID, subtaskID)
}

func (b *businessAPIImpl) DeleteSubtask(ctx context.Context, taskID, subtaskID string) (*domain.Task, error) {
	return b.services.TaskService.DeleteSubtask(ctx, taskID, subtaskID)
}

// ========== Mood ==========

func (b *businessAPIImpl) LogMood(ctx context.Context, mood int) (*domain.MoodLog, error) {
	return b.services.MoodService.LogMood(ctx, mood)
}

// ========== Reporting ==========

func (b *businessAPIImpl) GetStatus(ctx context.Context) (*StatusView, error) {
	progress, err := b.services.ReportingService.DailyProgress(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := b.services.ReportingService.CategorySummaries(ctx)
	if err != nil {
		return nil, err
	}

	reminder, err := b.services.ReportingService.PriorityReminders(ctx)
	if err != nil {
		return nil, err
	}

	return &StatusView{
		Progress:   progress,
		Categories: categories,
		Reminder:   reminder,
	}, nil
}

func (b *businessAPIImpl) History(ctx context.Context, limit int) ([]domain.DailyHistory, error) {
	return b.services.ReportingService.History(ctx, limit)
}

func (b *businessAPIImpl) Archive(ctx context.Context) ([]domain.ArchivedTask, error) {
	return b.services.ReportingService.Archive(ctx)
}

func (b *businessAPIImpl) ClearArchive(ctx context.Context) error {
	return b.services.ReportingService.ClearArchive(ctx)
}

func (b *businessAPIImpl) DeleteArchivedTask(ctx context.Context, id string) error {
	return b.services.ReportingService.DeleteArchivedTask(ctx, id)
}

func (b *businessAPIImpl) PriorityReminders(ctx context.Context) (*services.PriorityReminder, error) {
	return b.services.ReportingService.PriorityReminders(ctx)
}

// ========== Data Migration ==========

func (b *businessAPIImpl) Import(ctx context.Context, data map[string]json.RawMessage) (*services.ImportResult, error) {
	return b.services.ImportService.Import(ctx, data)
}
