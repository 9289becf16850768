package services

import (
	"context"
	"fmt"
	"strings"

	"daily-tracker/internal/domain"
	"daily-tracker/internal/errors"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	gateway       *Gateway
	coordinator   *Coordinator
	clock         Clock
	habitLabel    string
	reminderNames int
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(gateway *Gateway, coordinator *Coordinator, clock Clock, habitLabel string, reminderNames int) ReportingService {
	if reminderNames < 1 {
		reminderNames = 2
	}
	return &reportingServiceImpl{
		gateway:       gateway,
		coordinator:   coordinator,
		clock:         clock,
		habitLabel:    habitLabel,
		reminderNames: reminderNames,
	}
}

// DailyProgress applies the capped rule to the whole active list
func (r *reportingServiceImpl) DailyProgress(ctx context.Context) (*DailyProgress, error) {
	today := Today(r.clock)
	tasks := r.gateway.TasksOrEmpty(ctx)
	done, total := domain.CountItems(tasks)

	progress := &DailyProgress{
		Date:       today,
		Completed:  done,
		Total:      total,
		Percentage: domain.CappedProgress(done, total),
	}
	if habit, ok := domain.FindHabitTask(tasks, r.habitLabel); ok {
		progress.HabitCompleted = habit.Completed
	}
	if log, ok := domain.FindMood(r.gateway.MoodLogsOrEmpty(ctx), today); ok {
		mood := log.Mood
		progress.Mood = &mood
	}
	return progress, nil
}

// CategorySummaries returns one line per category in display order
func (r *reportingServiceImpl) CategorySummaries(ctx context.Context) ([]CategorySummary, error) {
	tasks := r.gateway.TasksOrEmpty(ctx)

	summaries := make([]CategorySummary, len(domain.Categories))
	for i, c := range domain.Categories {
		summaries[i] = CategorySummary{
			Category:    c,
			TaskCount:   len(domain.TasksInCategory(tasks, c)),
			Progress:    domain.ProgressForCategory(tasks, c),
			HasPriority: domain.HasPriorityTasks(tasks, c),
		}
	}
	return summaries, nil
}

// History returns up to limit entries, newest first. A limit <= 0 returns all.
func (r *reportingServiceImpl) History(ctx context.Context, limit int) ([]domain.DailyHistory, error) {
	history := domain.SortHistoryNewestFirst(r.gateway.HistoryOrEmpty(ctx))
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

// Archive returns archived tasks, most recently archived first
func (r *reportingServiceImpl) Archive(ctx context.Context) ([]domain.ArchivedTask, error) {
	archive := r.gateway.ArchiveOrEmpty(ctx)
	out := make([]domain.ArchivedTask, len(archive))
	for i, a := range archive {
		out[len(archive)-1-i] = a
	}
	return out, nil
}

// ClearArchive empties the archive
func (r *reportingServiceImpl) ClearArchive(ctx context.Context) error {
	return r.coordinator.Do(func() error {
		return r.gateway.SaveArchive(ctx, []domain.ArchivedTask{})
	})
}

// DeleteArchivedTask removes every archived copy of the task
func (r *reportingServiceImpl) DeleteArchivedTask(ctx context.Context, id string) error {
	return r.coordinator.Do(func() error {
		archive, err := r.gateway.Archive(ctx)
		if err != nil {
			return err
		}

		kept := make([]domain.ArchivedTask, 0, len(archive))
		for _, a := range archive {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		if len(kept) == len(archive) {
			return errors.NewNotFoundError("archived task", id)
		}
		return r.gateway.SaveArchive(ctx, kept)
	})
}

// PriorityReminders lists unfinished priority tasks for the reminder scheduler.
// Nothing is dispatched from here.
func (r *reportingServiceImpl) PriorityReminders(ctx context.Context) (*PriorityReminder, error) {
	reminder := &PriorityReminder{Tasks: []domain.Task{}}
	for _, t := range r.gateway.TasksOrEmpty(ctx) {
		if t.Priority && !t.Completed {
			reminder.Tasks = append(reminder.Tasks, t)
		}
	}
	reminder.Summary = r.reminderSummary(reminder.Tasks)
	return reminder, nil
}

func (r *reportingServiceImpl) reminderSummary(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return ""
	}

	shown := tasks
	if len(shown) > r.reminderNames {
		shown = shown[:r.reminderNames]
	}
	names := make([]string, len(shown))
	for i, t := range shown {
		names[i] = t.Text
	}

	summary := "Priority: " + strings.Join(names, ", ")
	if extra := len(tasks) - len(shown); extra > 0 {
		summary += fmt.Sprintf(" + %d more", extra)
	}
	return summary
}
