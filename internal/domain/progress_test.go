package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCappedProgress_Grid(t *testing.T) {
	for n := 0; n <= 8; n++ {
		for k := 0; k <= n; k++ {
			var expected float64
			switch {
			case n == 0:
				expected = 0
			case n < ProgressCap && k == n:
				expected = 100
			case n < ProgressCap:
				expected = float64(k) / float64(n) * 100
			case k >= ProgressCap:
				expected = 100
			default:
				expected = float64(k) / float64(ProgressCap) * 100
			}
			assert.InDelta(t, expected, CappedProgress(k, n), 1e-9, "n=%d k=%d", n, k)
		}
	}
}

func TestCappedProgress(t *testing.T) {
	tests := []struct {
		name     string
		done     int
		total    int
		expected float64
	}{
		{name: "empty list", done: 0, total: 0, expected: 0},
		{name: "one of two", done: 1, total: 2, expected: 50},
		{name: "two of two", done: 2, total: 2, expected: 100},
		{name: "two of three", done: 2, total: 3, expected: 200.0 / 3},
		{name: "three of ten", done: 3, total: 10, expected: 100},
		{name: "one of ten", done: 1, total: 10, expected: 100.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CappedProgress(tt.done, tt.total), 1e-9)
		})
	}
}

func TestTaskListProgress_FlattensSubtasks(t *testing.T) {
	tasks := []Task{{
		ID: "t1",
		Subtasks: []SubTask{
			{ID: "1", Completed: true},
			{ID: "2", Completed: true},
			{ID: "3"},
			{ID: "4"},
			{ID: "5"},
		},
	}}

	assert.InDelta(t, 66.67, TaskListProgress(tasks), 0.01)
}

func TestCountItems(t *testing.T) {
	tasks := []Task{
		{ID: "a", Completed: true},
		{ID: "b"},
		{ID: "c", Completed: true, Subtasks: []SubTask{{Completed: true}, {Completed: true}}},
	}

	done, total := CountItems(tasks)

	assert.Equal(t, 3, done)
	assert.Equal(t, 4, total)
	assert.Len(t, FlattenItems(tasks), 4)
}
