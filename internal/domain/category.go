package domain

import "sort"

// TasksInCategory returns the tasks whose category equals c, in list order.
// Uncategorized tasks never match.
func TasksInCategory(tasks []Task, c Category) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Category != "" && t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

// ProgressForCategory applies the capped rule to the flattened items of one category.
func ProgressForCategory(tasks []Task, c Category) float64 {
	matching := TasksInCategory(tasks, c)
	if len(matching) == 0 {
		return 0
	}
	return TaskListProgress(matching)
}

// HasPriorityTasks reports whether the category still has an unfinished priority task.
func HasPriorityTasks(tasks []Task, c Category) bool {
	for _, t := range TasksInCategory(tasks, c) {
		if t.Priority && !t.Completed {
			return true
		}
	}
	return false
}

// SortByPriority returns a copy of tasks with priority tasks first.
// Relative order is otherwise preserved.
func SortByPriority(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority && !out[j].Priority
	})
	return out
}
