package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"testing"

	"daily-tracker/internal/api"
	"daily-tracker/internal/config"
	"daily-tracker/internal/domain"
	"daily-tracker/internal/errors"
	"daily-tracker/internal/services"

	"github.com/stretchr/testify/require"
)

// mockBusinessAPI implements the BusinessAPI interface in memory for testing
type mockBusinessAPI struct {
	today    domain.CalendarDate
	tasks    []domain.Task
	archive  []domain.ArchivedTask
	history  []domain.DailyHistory
	moods    []domain.MoodLog
	imported map[string]json.RawMessage
	nextID   int

	loadCalls     int
	rolloverCalls int
	// failWith is returned by every call when set
	failWith error
	// loadErr is returned by Load until an import replaces the stored data
	loadErr error
}

// newMockBusinessAPI creates a new mock BusinessAPI instance
func newMockBusinessAPI() *mockBusinessAPI {
	return &mockBusinessAPI{today: "2024-03-10", tasks: []domain.Task{}}
}

func (m *mockBusinessAPI) id() string {
	m.nextID++
	return fmt.Sprintf("id-%d", m.nextID)
}

func (m *mockBusinessAPI) Load(ctx context.Context) (*services.LoadResult, error) {
	m.loadCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	var seeded bool
	m.tasks, seeded = domain.EnsureHabitTask(m.tasks, domain.DefaultHabitLabel, domain.DefaultHabitTaskID)
	return &services.LoadResult{
		Rollover: &services.RolloverResult{Date: m.today},
		Seeded:   seeded,
		Tasks:    m.tasks,
	}, nil
}

func (m *mockBusinessAPI) Rollover(ctx context.Context) (*services.RolloverResult, error) {
	m.rolloverCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &services.RolloverResult{Date: m.today, Performed: m.rolloverCalls == 1, Kept: len(m.tasks)}, nil
}

func (m *mockBusinessAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return domain.CloneTasks(m.tasks), nil
}

func (m *mockBusinessAPI) ListCategory(ctx context.Context, category domain.Category) ([]domain.Task, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return domain.SortByPriority(domain.TasksInCategory(m.tasks, category)), nil
}

func (m *mockBusinessAPI) AddTask(ctx context.Context, category, text string) (*domain.Task, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	c, err := domain.ParseCategory(category)
	if err != nil {
		return nil, errors.NewValidationError("category has invalid value", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewValidationError("text is required", nil)
	}
	task := domain.NewTask(m.id(), strings.TrimSpace(text), c)
	m.tasks = append(m.tasks, task)
	return &task, nil
}

func (m *mockBusinessAPI) mutate(id string, fn func(t *domain.Task) error) (*domain.Task, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	i := domain.TaskIndex(m.tasks, id)
	if i < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}
	if err := fn(&m.tasks[i]); err != nil {
		return nil, err
	}
	task := m.tasks[i].Clone()
	return &task, nil
}

func (m *mockBusinessAPI) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	return m.mutate(id, func(t *domain.Task) error { t.ToggleCompleted(); return nil })
}

func (m *mockBusinessAPI) ToggleExpand(ctx context.Context, id string) (*domain.Task, error) {
	return m.mutate(id, func(t *domain.Task) error { t.IsExpanded = !t.IsExpanded; return nil })
}

func (m *mockBusinessAPI) TogglePriority(ctx context.Context, id string) (*domain.Task, error) {
	return m.mutate(id, func(t *domain.Task) error { t.Priority = !t.Priority; return nil })
}

func (m *mockBusinessAPI) DeleteTask(ctx context.Context, id string) error {
	if m.failWith != nil {
		return m.failWith
	}
	i := domain.TaskIndex(m.tasks, id)
	if i < 0 {
		return errors.NewNotFoundError("task", id)
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	return nil
}

func (m *mockBusinessAPI) AddSubtask(ctx context.Context, taskID, text string) (*domain.Task, error) {
	return m.mutate(taskID, func(t *domain.Task) error {
		t.Subtasks = append(t.Subtasks, domain.SubTask{ID: m.id(), Text: text})
		t.SyncCompletion()
		return nil
	})
}

func (m *mockBusinessAPI) subtask(taskID, subtaskID string, fn func(t *domain.Task, i int)) (*domain.Task, error) {
	return m.mutate(taskID, func(t *domain.Task) error {
		i := t.SubtaskIndex(subtaskID)
		if i < 0 {
			return errors.NewNotFoundError("subtask", subtaskID)
		}
		fn(t, i)
		return nil
	})
}

func (m *mockBusinessAPI) ToggleSubtask(ctx context.Context, taskID, subtaskID string) (*domain.Task, error) {
	return m.subtask(taskID, subtaskID, func(t *domain.Task, i int) {
		t.Subtasks[i].Completed = !t.Subtasks[i].Completed
		t.SyncCompletion()
	})
}

func (m *mockBusinessAPI) ToggleSubtaskPriority(ctx context.Context, taskID, subtaskID string) (*domain.Task, error) {
	return m.subtask(taskID, subtaskID, func(t *domain.Task, i int) {
		t.Subtasks[i].Priority = !t.Subtasks[i].Priority
		t.SyncPriority()
	})
}

func (m *mockBusinessAPI) DeleteSubtask(ctx context.Context, taskID, subtaskID string) (*domain.Task, error) {
	return m.subtask(taskID, subtaskID, func(t *domain.Task, i int) {
		t.Subtasks = append(t.Subtasks[:i], t.Subtasks[i+1:]...)
		t.SyncCompletion()
	})
}

func (m *mockBusinessAPI) LogMood(ctx context.Context, mood int) (*domain.MoodLog, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if !domain.IsValidMood(mood) {
		return nil, errors.NewValidationError("mood must be between 1 and 5", nil)
	}
	log := domain.MoodLog{Date: m.today, Mood: mood}
	m.moods = domain.UpsertMood(m.moods, log)
	return &log, nil
}

func (m *mockBusinessAPI) GetStatus(ctx context.Context) (*api.StatusView, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	done, total := domain.CountItems(m.tasks)
	progress := &services.DailyProgress{
		Date:       m.today,
		Completed:  done,
		Total:      total,
		Percentage: domain.CappedProgress(done, total),
	}
	if habit, ok := domain.FindHabitTask(m.tasks, domain.DefaultHabitLabel); ok {
		progress.HabitCompleted = habit.Completed
	}
	if log, ok := domain.FindMood(m.moods, m.today); ok {
		mood := log.Mood
		progress.Mood = &mood
	}

	categories := make([]services.CategorySummary, len(domain.Categories))
	for i, c := range domain.Categories {
		categories[i] = services.CategorySummary{
			Category:    c,
			TaskCount:   len(domain.TasksInCategory(m.tasks, c)),
			Progress:    domain.ProgressForCategory(m.tasks, c),
			HasPriority: domain.HasPriorityTasks(m.tasks, c),
		}
	}

	reminder, _ := m.PriorityReminders(ctx)
	return &api.StatusView{Progress: progress, Categories: categories, Reminder: reminder}, nil
}

func (m *mockBusinessAPI) History(ctx context.Context, limit int) ([]domain.DailyHistory, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	history := domain.SortHistoryNewestFirst(m.history)
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

func (m *mockBusinessAPI) Archive(ctx context.Context) ([]domain.ArchivedTask, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]domain.ArchivedTask, len(m.archive))
	for i, a := range m.archive {
		out[len(m.archive)-1-i] = a
	}
	return out, nil
}

func (m *mockBusinessAPI) ClearArchive(ctx context.Context) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.archive = nil
	return nil
}

func (m *mockBusinessAPI) DeleteArchivedTask(ctx context.Context, id string) error {
	if m.failWith != nil {
		return m.failWith
	}
	kept := m.archive[:0]
	for _, a := range m.archive {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(m.archive) {
		return errors.NewNotFoundError("archived task", id)
	}
	m.archive = kept
	return nil
}

func (m *mockBusinessAPI) PriorityReminders(ctx context.Context) (*services.PriorityReminder, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	reminder := &services.PriorityReminder{Tasks: []domain.Task{}}
	var names []string
	for _, t := range m.tasks {
		if t.Priority && !t.Completed {
			reminder.Tasks = append(reminder.Tasks, t)
			names = append(names, t.Text)
		}
	}
	if len(names) > 0 {
		reminder.Summary = "Priority: " + strings.Join(names, ", ")
	}
	return reminder, nil
}

func (m *mockBusinessAPI) Import(ctx context.Context, data map[string]json.RawMessage) (*services.ImportResult, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	m.imported = data
	m.loadErr = nil
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, strings.TrimPrefix(k, "@"))
	}
	sort.Strings(keys)
	return &services.ImportResult{Keys: keys}, nil
}

// setupTestAppWithMockBusinessAPI creates an App backed by a fresh mock
func setupTestAppWithMockBusinessAPI(t *testing.T) (*App, *mockBusinessAPI) {
	t.Helper()
	mock := newMockBusinessAPI()
	return NewAppWithConfig(mock, config.NewConfig()), mock
}

// captureOutput runs fn and returns what it printed to stdout
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String(), runErr
}
