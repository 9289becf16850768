package domain

import (
	"encoding/json"
	"fmt"

	"daily-tracker/internal/repository/sqlite"
)

// BlobMapper converts between domain collections and the JSON blobs stored
// under the well-known keys.
type BlobMapper struct{}

// NewBlobMapper creates a new BlobMapper instance.
func NewBlobMapper() *BlobMapper {
	return &BlobMapper{}
}

func encodeBlob(key string, v interface{}) (*sqlite.Entry, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	return &sqlite.Entry{Key: key, Value: string(data)}, nil
}

func decodeBlob(entry *sqlite.Entry, v interface{}) error {
	if err := json.Unmarshal([]byte(entry.Value), v); err != nil {
		return fmt.Errorf("decode %s: %w", entry.Key, err)
	}
	return nil
}

// TasksToEntry encodes the active task list.
func (m *BlobMapper) TasksToEntry(tasks []Task) (*sqlite.Entry, error) {
	return encodeBlob(sqlite.KeyTasks, normalizeTasks(tasks))
}

// TasksFromEntry decodes the active task list. Missing subtask arrays become empty.
func (m *BlobMapper) TasksFromEntry(entry *sqlite.Entry) ([]Task, error) {
	var tasks []Task
	if err := decodeBlob(entry, &tasks); err != nil {
		return nil, err
	}
	return normalizeTasks(tasks), nil
}

// ArchiveToEntry encodes the archive.
func (m *BlobMapper) ArchiveToEntry(archive []ArchivedTask) (*sqlite.Entry, error) {
	if archive == nil {
		archive = []ArchivedTask{}
	}
	for i := range archive {
		if archive[i].Subtasks == nil {
			archive[i].Subtasks = []SubTask{}
		}
	}
	return encodeBlob(sqlite.KeyArchive, archive)
}

// ArchiveFromEntry decodes the archive.
func (m *BlobMapper) ArchiveFromEntry(entry *sqlite.Entry) ([]ArchivedTask, error) {
	var archive []ArchivedTask
	if err := decodeBlob(entry, &archive); err != nil {
		return nil, err
	}
	for i := range archive {
		if archive[i].Subtasks == nil {
			archive[i].Subtasks = []SubTask{}
		}
	}
	return archive, nil
}

// MoodLogsToEntry encodes the mood logs.
func (m *BlobMapper) MoodLogsToEntry(logs []MoodLog) (*sqlite.Entry, error) {
	if logs == nil {
		logs = []MoodLog{}
	}
	return encodeBlob(sqlite.KeyMoodLogs, logs)
}

// MoodLogsFromEntry decodes the mood logs.
func (m *BlobMapper) MoodLogsFromEntry(entry *sqlite.Entry) ([]MoodLog, error) {
	var logs []MoodLog
	if err := decodeBlob(entry, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// HistoryToEntry encodes the daily history.
func (m *BlobMapper) HistoryToEntry(history []DailyHistory) (*sqlite.Entry, error) {
	if history == nil {
		history = []DailyHistory{}
	}
	return encodeBlob(sqlite.KeyHistory, history)
}

// HistoryFromEntry decodes the daily history.
func (m *BlobMapper) HistoryFromEntry(entry *sqlite.Entry) ([]DailyHistory, error) {
	var history []DailyHistory
	if err := decodeBlob(entry, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// LastArchiveDateToEntry stores the marker as the bare date string.
func (m *BlobMapper) LastArchiveDateToEntry(date CalendarDate) *sqlite.Entry {
	return &sqlite.Entry{Key: sqlite.KeyLastArchiveDate, Value: date.String()}
}

// LastArchiveDateFromEntry parses the marker. Values written as a JSON string are accepted too.
func (m *BlobMapper) LastArchiveDateFromEntry(entry *sqlite.Entry) (CalendarDate, error) {
	raw := entry.Value
	var quoted string
	if err := json.Unmarshal([]byte(raw), &quoted); err == nil {
		raw = quoted
	}
	date, err := ParseCalendarDate(raw)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", entry.Key, err)
	}
	return date, nil
}

func normalizeTasks(tasks []Task) []Task {
	if tasks == nil {
		return []Task{}
	}
	for i := range tasks {
		if tasks[i].Subtasks == nil {
			tasks[i].Subtasks = []SubTask{}
		}
	}
	return tasks
}
