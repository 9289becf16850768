package domain

// ProgressCap is the number of completed items that earns full credit.
const ProgressCap = 3

// Completable is anything that counts as one progress item.
type Completable interface {
	IsCompleted() bool
}

// CappedProgress applies the "three wins a day" rule.
//
// With fewer than ProgressCap items every item must be done for 100; otherwise
// completing any ProgressCap items is full credit.
func CappedProgress(done, total int) float64 {
	switch {
	case total <= 0:
		return 0
	case total < ProgressCap:
		if done >= total {
			return 100
		}
		return float64(done) / float64(total) * 100
	default:
		if done >= ProgressCap {
			return 100
		}
		return float64(done) / float64(ProgressCap) * 100
	}
}

// ComputeProgress returns the capped completion percentage of items.
func ComputeProgress(items []Completable) float64 {
	done := 0
	for _, item := range items {
		if item.IsCompleted() {
			done++
		}
	}
	return CappedProgress(done, len(items))
}

// FlattenItems expands tasks into progress items: a task with subtasks
// contributes its subtasks, any other task contributes itself.
func FlattenItems(tasks []Task) []Completable {
	items := make([]Completable, 0, len(tasks))
	for _, t := range tasks {
		if t.HasSubtasks() {
			for _, st := range t.Subtasks {
				items = append(items, st)
			}
			continue
		}
		items = append(items, t)
	}
	return items
}

// CountItems returns the completed and total item counts of a task list.
func CountItems(tasks []Task) (done, total int) {
	for _, item := range FlattenItems(tasks) {
		total++
		if item.IsCompleted() {
			done++
		}
	}
	return done, total
}

// TaskListProgress is ComputeProgress over the flattened task list.
func TaskListProgress(tasks []Task) float64 {
	return ComputeProgress(FlattenItems(tasks))
}
