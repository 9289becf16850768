package services

import (
	"sync"
	"testing"

	"daily-tracker/internal/config"
	"daily-tracker/internal/domain"
	"daily-tracker/internal/errors"
	"daily-tracker/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolloverService_FirstRunSetsMarker(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")

	result, err := env.services.RolloverService.MaybeRollover(env.ctx)

	require.NoError(t, err)
	assert.True(t, result.Performed)
	assert.Equal(t, 0, result.Archived)
	assert.Nil(t, result.History)
	assert.Equal(t, domain.CalendarDate("2024-03-10"), env.marker(t))
	assert.Empty(t, env.history(t))
}

func TestRolloverService_ArchivesAndRecordsHistory(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")
	env.putRaw(t, sqlite.KeyLastArchiveDate, "2024-03-09")
	env.putRaw(t, sqlite.KeyMoodLogs, `[{"date":"2024-03-09","mood":2}]`)
	env.putTasks(t, []domain.Task{
		{ID: "a", Text: "Report", Completed: true, Category: domain.CategoryWork},
		{ID: "b", Text: "Email", Completed: true, Category: domain.CategoryWork},
		{ID: "c", Text: "Taxes", Category: domain.CategoryLife},
	})

	result, err := env.services.RolloverService.MaybeRollover(env.ctx)
	require.NoError(t, err)

	assert.True(t, result.Performed)
	assert.Equal(t, 2, result.Archived)
	assert.Equal(t, 1, result.Kept)

	tasks := env.tasks(t)
	require.Len(t, tasks, 1)
	assert.Equal(t, "c", tasks[0].ID)

	archive := env.archive(t)
	require.Len(t, archive, 2)
	assert.Equal(t, domain.CalendarDate("2024-03-09"), archive[0].ArchivedDate)
	assert.Equal(t, domain.CalendarDate("2024-03-09"), archive[1].ArchivedDate)

	history := env.history(t)
	require.Len(t, history, 1)
	assert.Equal(t, domain.CalendarDate("2024-03-09"), history[0].Date)
	assert.Equal(t, 2, history[0].TasksCompleted)
	assert.Equal(t, 3, history[0].TotalTasks)
	assert.InDelta(t, 66.67, history[0].ProgressPercentage, 0.01)
	require.NotNil(t, history[0].Mood)
	assert.Equal(t, 2, *history[0].Mood)

	assert.Equal(t, domain.CalendarDate("2024-03-10"), env.marker(t))
}

func TestRolloverService_IdempotentOnSameDay(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")
	env.putRaw(t, sqlite.KeyLastArchiveDate, "2024-03-09")
	env.putTasks(t, []domain.Task{
		{ID: "a", Text: "Report", Completed: true},
		{ID: "h", Text: domain.DefaultHabitLabel, IsDaily: true, Completed: true},
	})

	_, err := env.services.RolloverService.MaybeRollover(env.ctx)
	require.NoError(t, err)
	first := env.snapshot(t)

	result, err := env.services.RolloverService.MaybeRollover(env.ctx)
	require.NoError(t, err)

	assert.False(t, result.Performed)
	assert.Equal(t, first, env.snapshot(t))
}

func TestRolloverService_CarriesOverDailyHabit(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")
	env.putRaw(t, sqlite.KeyLastArchiveDate, "2024-03-09")
	env.putTasks(t, []domain.Task{
		{ID: "habit-1", Text: domain.DefaultHabitLabel, IsDaily: true, Completed: true, Priority: true,
			Subtasks: []domain.SubTask{{ID: "s1", Text: "Sketch", Completed: true}}},
	})

	result, err := env.services.RolloverService.MaybeRollover(env.ctx)
	require.NoError(t, err)

	tasks := env.tasks(t)
	require.Len(t, tasks, 1)
	assert.Equal(t, "habit-1", tasks[0].ID)
	assert.True(t, tasks[0].Priority)
	assert.False(t, tasks[0].Completed)
	assert.False(t, tasks[0].Subtasks[0].Completed)
	assert.Equal(t, 1, result.Reset)
	assert.Empty(t, env.archive(t))
	assert.Empty(t, env.history(t), "no completed non-daily work means no history entry")
}

func TestRolloverService_RecordIdleDays(t *testing.T) {
	env := newTestEnvWithConfig(t, "2024-03-10", func(cfg *config.Config) {
		cfg.Rollover.RecordIdleDays = true
	})
	env.putRaw(t, sqlite.KeyLastArchiveDate, "2024-03-09")
	env.putTasks(t, []domain.Task{{ID: "h", Text: domain.DefaultHabitLabel, IsDaily: true, Completed: true}})

	result, err := env.services.RolloverService.MaybeRollover(env.ctx)
	require.NoError(t, err)

	require.NotNil(t, result.History)
	assert.True(t, result.History.BeCreativeCompleted)
	assert.Len(t, env.history(t), 1)
}

func TestRolloverService_TwoDaysTwoHistoryEntries(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")
	env.putRaw(t, sqlite.KeyLastArchiveDate, "2024-03-09")
	env.putTasks(t, []domain.Task{{ID: "a", Text: "One", Completed: true}, {ID: "b", Text: "Two"}})

	_, err := env.services.RolloverService.MaybeRollover(env.ctx)
	require.NoError(t, err)

	_, err = env.services.TaskService.ToggleTask(env.ctx, "b")
	require.NoError(t, err)
	env.clock.SetDate(t, "2024-03-11")

	_, err = env.services.RolloverService.MaybeRollover(env.ctx)
	require.NoError(t, err)

	history := env.history(t)
	require.Len(t, history, 2)
	assert.Equal(t, domain.CalendarDate("2024-03-09"), history[0].Date)
	assert.Equal(t, domain.CalendarDate("2024-03-10"), history[1].Date)
	assert.Equal(t, 1, history[1].TasksCompleted)
	assert.Equal(t, 1, history[1].TotalTasks)
	assert.Len(t, env.archive(t), 2)
}

func TestRolloverService_CorruptBlobAborts(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")
	env.putRaw(t, sqlite.KeyLastArchiveDate, "2024-03-09")
	env.putRaw(t, sqlite.KeyTasks, "{not json")
	before := env.snapshot(t)

	_, err := env.services.RolloverService.MaybeRollover(env.ctx)

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorageRead))
	assert.Equal(t, before, env.snapshot(t))
}

func TestRolloverService_UnreadableMoodLogsDropTheMood(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")
	warnings := captureWarnings(t)
	env.putRaw(t, sqlite.KeyLastArchiveDate, "2024-03-09")
	env.putRaw(t, sqlite.KeyMoodLogs, "{not json")
	env.putTasks(t, []domain.Task{
		{ID: "a", Text: "Report", Completed: true},
		{ID: "b", Text: "Taxes"},
	})

	result, err := env.services.TaskService.Load(env.ctx)
	require.NoError(t, err)

	require.NotNil(t, result.Rollover)
	assert.True(t, result.Rollover.Performed)
	assert.Equal(t, 1, result.Rollover.Archived)
	require.Len(t, env.archive(t), 1)
	assert.Equal(t, "a", env.archive(t)[0].ID)

	history := env.history(t)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].Mood)
	assert.Equal(t, domain.CalendarDate("2024-03-10"), env.marker(t))
	assert.Contains(t, warnings.String(), sqlite.KeyMoodLogs)

	_, err = env.services.TaskService.Load(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, "{not json", env.snapshot(t)[sqlite.KeyMoodLogs])
}

func TestRolloverService_FailedCommitIsRetriedNextCall(t *testing.T) {
	env := newTestEnvWithConfig(t, "2024-03-10", func(cfg *config.Config) {
		cfg.Rollover.WriteRetries = 1
	})
	env.putRaw(t, sqlite.KeyLastArchiveDate, "2024-03-09")
	env.putTasks(t, []domain.Task{{ID: "a", Text: "Done", Completed: true}})
	before := env.snapshot(t)

	env.repo.failNextPuts(2)
	_, err := env.services.RolloverService.MaybeRollover(env.ctx)

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorageWrite))
	assert.Equal(t, before, env.snapshot(t), "nothing applied, marker not advanced")

	result, err := env.services.RolloverService.MaybeRollover(env.ctx)
	require.NoError(t, err)
	assert.True(t, result.Performed)
	assert.Len(t, env.archive(t), 1)
	assert.Equal(t, domain.CalendarDate("2024-03-10"), env.marker(t))
}

func TestRolloverService_TransientWriteFailureRecovers(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")
	env.putRaw(t, sqlite.KeyLastArchiveDate, "2024-03-09")

	env.repo.failNextPuts(2)
	result, err := env.services.RolloverService.MaybeRollover(env.ctx)

	require.NoError(t, err)
	assert.True(t, result.Performed)
	assert.Equal(t, 3, env.repo.putCalls)
}

func TestRolloverService_CorruptMarkerReadsAsAbsent(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")
	env.putRaw(t, sqlite.KeyLastArchiveDate, "garbage")

	result, err := env.services.RolloverService.MaybeRollover(env.ctx)

	require.NoError(t, err)
	assert.True(t, result.Performed)
	assert.Equal(t, domain.CalendarDate("2024-03-10"), env.marker(t))
}

func TestRolloverService_ConcurrentCallsRollOnce(t *testing.T) {
	env := newTestEnv(t, "2024-03-10")
	env.putRaw(t, sqlite.KeyLastArchiveDate, "2024-03-09")
	env.putTasks(t, []domain.Task{
		{ID: "a", Text: "One", Completed: true},
		{ID: "b", Text: "Two", Completed: true},
	})

	var wg sync.WaitGroup
	performed := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := env.services.RolloverService.MaybeRollover(env.ctx)
			if err == nil {
				performed <- result.Performed
			}
		}()
	}
	wg.Wait()
	close(performed)

	count := 0
	for p := range performed {
		if p {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Len(t, env.archive(t), 2)
}
