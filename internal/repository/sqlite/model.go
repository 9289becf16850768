package sqlite

import "time"

// Well-known keys of the persisted collections.
const (
	KeyTasks           = "tasks"
	KeyArchive         = "archive"
	KeyMoodLogs        = "mood_logs"
	KeyHistory         = "history"
	KeyLastArchiveDate = "last_archive_date"
)

// Entry is one named blob in the key-value store.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
