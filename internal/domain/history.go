package domain

import "sort"

// DailyHistory summarizes one finished day.
type DailyHistory struct {
	Date                CalendarDate `json:"date"`
	TasksCompleted      int          `json:"tasksCompleted"`
	TotalTasks          int          `json:"totalTasks"`
	ProgressPercentage  float64      `json:"progressPercentage"`
	Mood                *int         `json:"mood,omitempty"`
	BeCreativeCompleted bool         `json:"beCreativeCompleted"`
}

// UpsertHistory replaces the entry with the same date in place, or appends.
func UpsertHistory(history []DailyHistory, entry DailyHistory) []DailyHistory {
	out := make([]DailyHistory, len(history), len(history)+1)
	copy(out, history)
	for i, h := range out {
		if h.Date == entry.Date {
			out[i] = entry
			return out
		}
	}
	return append(out, entry)
}

// SortHistoryNewestFirst returns a copy of history ordered by date, newest first.
func SortHistoryNewestFirst(history []DailyHistory) []DailyHistory {
	out := make([]DailyHistory, len(history))
	copy(out, history)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}
