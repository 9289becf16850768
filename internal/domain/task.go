package domain

import (
	"fmt"
	"strings"
)

// Category groups tasks into the four life areas shown on the start screen.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryProjects Category = "projects"
	CategoryLife     Category = "life"
	CategoryOwn      Category = "own"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryWork, CategoryProjects, CategoryLife, CategoryOwn}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryProjects, CategoryLife, CategoryOwn:
		return true
	default:
		return false
	}
}

// ParseCategory converts user input into a Category.
func ParseCategory(input string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(input)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %q", input)
	}
	return c, nil
}

// SubTask is owned by exactly one Task.
type SubTask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Priority  bool   `json:"priority,omitempty"`
}

// IsCompleted implements Completable.
func (s SubTask) IsCompleted() bool {
	return s.Completed
}

// Task represents a to-do item in the active list.
// IsExpanded is UI state but is persisted with the task.
type Task struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Completed  bool      `json:"completed"`
	Subtasks   []SubTask `json:"subtasks"`
	IsExpanded bool      `json:"isExpanded"`
	IsDaily    bool      `json:"isDaily,omitempty"`
	Category   Category  `json:"category,omitempty"`
	Priority   bool      `json:"priority,omitempty"`
}

// NewTask creates an incomplete task with no subtasks.
func NewTask(id, text string, category Category) Task {
	return Task{
		ID:       id,
		Text:     text,
		Subtasks: []SubTask{},
		Category: category,
	}
}

// IsCompleted implements Completable.
func (t Task) IsCompleted() bool {
	return t.Completed
}

// IsValid checks if the task has the fields every persisted task needs.
func (t Task) IsValid() bool {
	if t.ID == "" || strings.TrimSpace(t.Text) == "" {
		return false
	}
	return t.Category == "" || t.Category.IsValid()
}

// HasSubtasks reports whether progress is measured on the subtasks instead of the task.
func (t Task) HasSubtasks() bool {
	return len(t.Subtasks) > 0
}

// String returns the task text for display purposes.
func (t Task) String() string {
	return t.Text
}

// Clone returns a copy that shares no subtask storage with t.
func (t Task) Clone() Task {
	c := t
	c.Subtasks = make([]SubTask, len(t.Subtasks))
	copy(c.Subtasks, t.Subtasks)
	return c
}

// SubtaskIndex returns the position of the subtask with the given id, or -1.
func (t Task) SubtaskIndex(id string) int {
	for i, st := range t.Subtasks {
		if st.ID == id {
			return i
		}
	}
	return -1
}

// SyncCompletion keeps Completed equal to "all subtasks completed".
// Tasks without subtasks are left alone.
func (t *Task) SyncCompletion() {
	if !t.HasSubtasks() {
		return
	}
	for _, st := range t.Subtasks {
		if !st.Completed {
			t.Completed = false
			return
		}
	}
	t.Completed = true
}

// ToggleCompleted flips the task. A task with subtasks carries every subtask
// to the new state so Completed stays equal to "all subtasks completed".
func (t *Task) ToggleCompleted() {
	done := !t.Completed
	for i := range t.Subtasks {
		t.Subtasks[i].Completed = done
	}
	t.Completed = done
}

// SyncPriority raises the task flag while any subtask is flagged.
func (t *Task) SyncPriority() {
	t.Priority = false
	for _, st := range t.Subtasks {
		if st.Priority {
			t.Priority = true
			return
		}
	}
}

// ResetCompletion clears the task and every subtask. Priority flags are kept.
func (t *Task) ResetCompletion() {
	t.Completed = false
	for i := range t.Subtasks {
		t.Subtasks[i].Completed = false
	}
}

// ArchivedTask is a completed task moved out of the active list during rollover.
type ArchivedTask struct {
	Task
	ArchivedDate CalendarDate `json:"archivedDate"`
}

// TaskIndex returns the position of the task with the given id, or -1.
func TaskIndex(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// CloneTasks deep-copies a task list.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
