package domain

import "fmt"

// RolloverInput is the persisted state a rollover starts from.
type RolloverInput struct {
	Today      CalendarDate
	Tasks      []Task
	Archive    []ArchivedTask
	MoodLogs   []MoodLog
	History    []DailyHistory
	HabitLabel string
	// RecordIdleDays writes a history entry even when nothing non-daily was completed.
	RecordIdleDays bool
}

// RolloverPlan holds every write a rollover needs. Nothing is persisted until
// the plan is committed as a whole.
type RolloverPlan struct {
	Today     CalendarDate
	Yesterday CalendarDate

	Tasks   []Task
	Archive []ArchivedTask
	History []DailyHistory

	Archived     []ArchivedTask
	KeptCount    int
	ResetCount   int
	HistoryEntry *DailyHistory
}

// ArchiveChanged reports whether the archive blob needs rewriting.
func (p *RolloverPlan) ArchiveChanged() bool {
	return len(p.Archived) > 0
}

// HistoryChanged reports whether the history blob needs rewriting.
func (p *RolloverPlan) HistoryChanged() bool {
	return p.HistoryEntry != nil
}

// PlanRollover computes the transition from yesterday's list to today's.
// The input slices are not modified.
func PlanRollover(in RolloverInput) (*RolloverPlan, error) {
	yesterday, err := in.Today.PreviousDay()
	if err != nil {
		return nil, fmt.Errorf("plan rollover: %w", err)
	}

	var completedNonDaily, incomplete, daily []Task
	for _, t := range in.Tasks {
		switch {
		case t.IsDaily:
			daily = append(daily, t.Clone())
		case t.Completed:
			completedNonDaily = append(completedNonDaily, t.Clone())
		default:
			incomplete = append(incomplete, t.Clone())
		}
	}

	for i := range daily {
		daily[i].ResetCompletion()
	}

	plan := &RolloverPlan{
		Today:      in.Today,
		Yesterday:  yesterday,
		Tasks:      make([]Task, 0, len(incomplete)+len(daily)),
		Archive:    in.Archive,
		History:    in.History,
		KeptCount:  len(incomplete),
		ResetCount: len(daily),
	}
	plan.Tasks = append(plan.Tasks, incomplete...)
	plan.Tasks = append(plan.Tasks, daily...)

	if len(completedNonDaily) > 0 {
		plan.Archived = make([]ArchivedTask, len(completedNonDaily))
		for i, t := range completedNonDaily {
			plan.Archived[i] = ArchivedTask{Task: t, ArchivedDate: yesterday}
		}
		archive := make([]ArchivedTask, 0, len(in.Archive)+len(plan.Archived))
		archive = append(archive, in.Archive...)
		plan.Archive = append(archive, plan.Archived...)
	}

	if len(completedNonDaily) > 0 || in.RecordIdleDays {
		entry := SummarizeDay(yesterday, in.Tasks, in.MoodLogs, in.HabitLabel)
		plan.HistoryEntry = &entry
		plan.History = UpsertHistory(in.History, entry)
	}

	return plan, nil
}

// SummarizeDay builds the history entry for date from the task list as it stood
// before any reset.
func SummarizeDay(date CalendarDate, tasks []Task, moods []MoodLog, habitLabel string) DailyHistory {
	done, total := CountItems(tasks)
	entry := DailyHistory{
		Date:               date,
		TasksCompleted:     done,
		TotalTasks:         total,
		ProgressPercentage: CappedProgress(done, total),
	}
	if log, ok := FindMood(moods, date); ok {
		mood := log.Mood
		entry.Mood = &mood
	}
	for _, t := range tasks {
		if IsHabitTask(t, habitLabel) && t.Completed {
			entry.BeCreativeCompleted = true
			break
		}
	}
	return entry
}
