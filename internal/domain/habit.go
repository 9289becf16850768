package domain

const (
	// DefaultHabitLabel is the text of the seeded daily habit.
	DefaultHabitLabel = "Be creative"
	// DefaultHabitTaskID is the fixed id of the seeded daily habit.
	DefaultHabitTaskID = "daily-be-creative"
)

// NewHabitTask builds the daily habit task.
func NewHabitTask(id, label string) Task {
	return Task{
		ID:       id,
		Text:     label,
		Subtasks: []SubTask{},
		IsDaily:  true,
	}
}

// IsHabitTask matches on label and the daily flag, never on id.
func IsHabitTask(t Task, label string) bool {
	return t.IsDaily && t.Text == label
}

// FindHabitTask returns the first habit task in tasks.
func FindHabitTask(tasks []Task, label string) (Task, bool) {
	for _, t := range tasks {
		if IsHabitTask(t, label) {
			return t, true
		}
	}
	return Task{}, false
}

// EnsureHabitTask prepends the habit task when it is missing.
// The second result reports whether tasks changed.
func EnsureHabitTask(tasks []Task, label, id string) ([]Task, bool) {
	if _, ok := FindHabitTask(tasks, label); ok {
		return tasks, false
	}
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, NewHabitTask(id, label))
	out = append(out, tasks...)
	return out, true
}
