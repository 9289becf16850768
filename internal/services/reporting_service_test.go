package services

import (
	"testing"

	"daily-tracker/internal/config"
	"daily-tracker/internal/domain"
	"daily-tracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportingService_DailyProgress(t *testing.T) {
	tests := []struct {
		name      string
		tasks     []domain.Task
		wantDone  int
		wantTotal int
		wantPct   float64
		wantHabit bool
	}{
		{
			name:  "empty list",
			tasks: []domain.Task{},
		},
		{
			name: "two of three earns two thirds",
			tasks: []domain.Task{
				{ID: "a", Text: "A", Completed: true},
				{ID: "b", Text: "B", Completed: true},
				{ID: "c", Text: "C"},
			},
			wantDone: 2, wantTotal: 3, wantPct: 200.0 / 3,
		},
		{
			name: "three wins out of five is full credit",
			tasks: []domain.Task{
				{ID: "a", Text: "A", Completed: true},
				{ID: "b", Text: "B", Completed: true},
				{ID: "c", Text: "C", Completed: true},
				{ID: "d", Text: "D"},
				{ID: "e", Text: "E"},
			},
			wantDone: 3, wantTotal: 5, wantPct: 100,
		},
		{
			name: "subtasks replace their parent",
			tasks: []domain.Task{
				{ID: "p", Text: "P", Subtasks: []domain.SubTask{
					{ID: "s1", Text: "S1", Completed: true},
					{ID: "s2", Text: "S2"},
				}},
				{ID: "h", Text: domain.DefaultHabitLabel, IsDaily: true, Completed: true},
			},
			wantDone: 2, wantTotal: 3, wantPct: 200.0 / 3, wantHabit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "2024-03-10")
			env.putTasks(t, tt.tasks)

			progress, err := env.services.ReportingService.DailyProgress(env.ctx)

			require.NoError(t, err)
			assert.Equal(t, domain.CalendarDate("2024-03-10"), progress.Date)
			assert.Equal(t, tt.wantDone, progress.Completed)
			assert.Equal(t, tt.wantTotal, progress.Total)
			assert.InDelta(t, tt.wantPct, progress.Percentage, 0.01)
			assert.Equal(t, tt.wantHabit, progress.HabitCompleted)
			assert.Nil(t, progress.Mood)
		})
	}
}

func TestReportingService_DailyProgressIncludesTodaysMood(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")
	_, err := env.services.MoodService.LogMood(env.ctx, 4)
	require.NoError(t, err)

	progress, err := env.services.ReportingService.DailyProgress(env.ctx)
	require.NoError(t, err)
	require.NotNil(t, progress.Mood)
	assert.Equal(t, 4, *progress.Mood)
}

func TestReportingService_CategorySummaries(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")
	env.putTasks(t, []domain.Task{
		{ID: "w1", Text: "W1", Category: domain.CategoryWork, Completed: true},
		{ID: "w2", Text: "W2", Category: domain.CategoryWork, Priority: true},
		{ID: "l1", Text: "L1", Category: domain.CategoryLife, Completed: true, Priority: true},
		{ID: "x", Text: "Loose"},
	})

	summaries, err := env.services.ReportingService.CategorySummaries(env.ctx)
	require.NoError(t, err)
	require.Len(t, summaries, len(domain.Categories))

	byCategory := map[domain.Category]CategorySummary{}
	for i, s := range summaries {
		assert.Equal(t, domain.Categories[i], s.Category)
		byCategory[s.Category] = s
	}

	assert.Equal(t, 2, byCategory[domain.CategoryWork].TaskCount)
	assert.InDelta(t, 50, byCategory[domain.CategoryWork].Progress, 0.01)
	assert.True(t, byCategory[domain.CategoryWork].HasPriority)

	assert.Equal(t, 1, byCategory[domain.CategoryLife].TaskCount)
	assert.InDelta(t, 100, byCategory[domain.CategoryLife].Progress, 0.01)
	assert.False(t, byCategory[domain.CategoryLife].HasPriority, "completed priority tasks do not count")

	assert.Zero(t, byCategory[domain.CategoryOwn].TaskCount)
	assert.Zero(t, byCategory[domain.CategoryOwn].Progress)
}

func TestReportingService_History(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")
	require.NoError(t, env.store.CommitRollover(env.ctx, &domain.RolloverPlan{
		Today:        "2024-03-10",
		Tasks:        []domain.Task{},
		History:      []domain.DailyHistory{{Date: "2024-03-07"}, {Date: "2024-03-09"}, {Date: "2024-03-08"}},
		HistoryEntry: &domain.DailyHistory{Date: "2024-03-09"},
	}))
	svc := env.services.ReportingService

	all, err := svc.History(env.ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.CalendarDate("2024-03-09"), all[0].Date)
	assert.Equal(t, domain.CalendarDate("2024-03-08"), all[1].Date)
	assert.Equal(t, domain.CalendarDate("2024-03-07"), all[2].Date)

	limited, err := svc.History(env.ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.Equal(t, domain.CalendarDate("2024-03-09"), limited[0].Date)
}

func TestReportingService_Archive(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")
	require.NoError(t, env.store.SaveArchive(env.ctx, []domain.ArchivedTask{
		{Task: domain.Task{ID: "a", Text: "Old", Completed: true}, ArchivedDate: "2024-03-01"},
		{Task: domain.Task{ID: "b", Text: "Newer", Completed: true}, ArchivedDate: "2024-03-05"},
		{Task: domain.Task{ID: "a", Text: "Old", Completed: true}, ArchivedDate: "2024-03-06"},
	}))
	svc := env.services.ReportingService

	archive, err := svc.Archive(env.ctx)
	require.NoError(t, err)
	require.Len(t, archive, 3)
	assert.Equal(t, domain.CalendarDate("2024-03-06"), archive[0].ArchivedDate)
	assert.Equal(t, domain.CalendarDate("2024-03-01"), archive[2].ArchivedDate)

	require.NoError(t, svc.DeleteArchivedTask(env.ctx, "a"))
	remaining := env.archive(t)
	require.Len(t, remaining, 1)
	assert.Equal(t, "b", remaining[0].ID)

	err = svc.DeleteArchivedTask(env.ctx, "a")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	require.NoError(t, svc.ClearArchive(env.ctx))
	assert.Empty(t, env.archive(t))
}

func TestReportingService_PriorityReminders(t *testing.T) {
	tests := []struct {
		name        string
		tasks       []domain.Task
		wantCount   int
		wantSummary string
	}{
		{
			name:        "nothing flagged",
			tasks:       []domain.Task{{ID: "a", Text: "A"}},
			wantSummary: "",
		},
		{
			name: "done tasks are skipped",
			tasks: []domain.Task{
				{ID: "a", Text: "Report", Priority: true},
				{ID: "b", Text: "Done", Priority: true, Completed: true},
			},
			wantCount:   1,
			wantSummary: "Priority: Report",
		},
		{
			name: "names are capped",
			tasks: []domain.Task{
				{ID: "a", Text: "Report", Priority: true},
				{ID: "b", Text: "Call mom", Priority: true},
				{ID: "c", Text: "Taxes", Priority: true},
			},
			wantCount:   3,
			wantSummary: "Priority: Report, Call mom + 1 more",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "2024-03-10")
			env.putTasks(t, tt.tasks)

			reminder, err := env.services.ReportingService.PriorityReminders(env.ctx)

			require.NoError(t, err)
			assert.Len(t, reminder.Tasks, tt.wantCount)
			assert.Equal(t, tt.wantSummary, reminder.Summary)
		})
	}
}

func TestReportingService_ReminderNamesFromConfig(t *testing.T) {
	env := newTestEnvWithConfig(t, "2024-03-10", func(cfg *config.Config) {
		cfg.Display.ReminderNames = 1
	})
	env.putTasks(t, []domain.Task{
		{ID: "a", Text: "Report", Priority: true},
		{ID: "b", Text: "Taxes", Priority: true},
	})

	reminder, err := env.services.ReportingService.PriorityReminders(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, "Priority: Report + 1 more", reminder.Summary)
}
