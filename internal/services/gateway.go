package services

import (
	"context"
	"time"

	"daily-tracker/internal/domain"
	"daily-tracker/internal/errors"
	"daily-tracker/internal/logging"
	"daily-tracker/internal/repository/sqlite"
)

// Gateway reads and writes the typed collections stored as JSON blobs.
//
// Strict reads return a storage_read error for anything but a missing key and
// are used wherever the result is written back. Lenient reads substitute the
// empty default and log a warning; the views and the rollover's mood lookup
// use them.
type Gateway struct {
	repo    sqlite.Repository
	mapper  *domain.BlobMapper
	retries int
	backoff time.Duration
	sleep   func(time.Duration)
}

// NewGateway creates a gateway that retries failed writes.
func NewGateway(repo sqlite.Repository, retries int, backoff time.Duration) *Gateway {
	if retries < 0 {
		retries = 0
	}
	return &Gateway{
		repo:    repo,
		mapper:  domain.NewBlobMapper(),
		retries: retries,
		backoff: backoff,
		sleep:   time.Sleep,
	}
}

func readBlob[T any](ctx context.Context, g *Gateway, key string, decode func(*sqlite.Entry) (T, error)) (T, error) {
	var zero T
	entry, err := g.repo.GetEntry(ctx, key)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return zero, nil
		}
		return zero, errors.NewStorageReadError(key, err)
	}
	value, err := decode(entry)
	if err != nil {
		return zero, errors.NewStorageReadError(key, err)
	}
	return value, nil
}

// readBlobDiscardingCorrupt fails on store errors but reads an undecodable
// blob as empty, so the caller's write replaces it.
func readBlobDiscardingCorrupt[T any](ctx context.Context, g *Gateway, key string, decode func(*sqlite.Entry) (T, error)) (T, error) {
	var zero T
	entry, err := g.repo.GetEntry(ctx, key)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return zero, nil
		}
		return zero, errors.NewStorageReadError(key, err)
	}
	value, err := decode(entry)
	if err != nil {
		logging.Warnf("discarding unreadable %s: %v", key, err)
		return zero, nil
	}
	return value, nil
}

func readBlobLenient[T any](ctx context.Context, g *Gateway, key string, decode func(*sqlite.Entry) (T, error)) T {
	value, err := readBlob(ctx, g, key, decode)
	if err != nil {
		logging.Warnf("using empty %s: %v", key, err)
		var zero T
		return zero
	}
	return value
}

// Tasks reads the active list strictly.
func (g *Gateway) Tasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := readBlob(ctx, g, sqlite.KeyTasks, g.mapper.TasksFromEntry)
	if tasks == nil && err == nil {
		tasks = []domain.Task{}
	}
	return tasks, err
}

// TasksOrEmpty reads the active list, falling back to an empty list.
func (g *Gateway) TasksOrEmpty(ctx context.Context) []domain.Task {
	tasks := readBlobLenient(ctx, g, sqlite.KeyTasks, g.mapper.TasksFromEntry)
	if tasks == nil {
		return []domain.Task{}
	}
	return tasks
}

// Archive reads the archive strictly.
func (g *Gateway) Archive(ctx context.Context) ([]domain.ArchivedTask, error) {
	return readBlob(ctx, g, sqlite.KeyArchive, g.mapper.ArchiveFromEntry)
}

// ArchiveOrEmpty reads the archive, falling back to an empty list.
func (g *Gateway) ArchiveOrEmpty(ctx context.Context) []domain.ArchivedTask {
	return readBlobLenient(ctx, g, sqlite.KeyArchive, g.mapper.ArchiveFromEntry)
}

// MoodLogs reads the mood logs strictly.
func (g *Gateway) MoodLogs(ctx context.Context) ([]domain.MoodLog, error) {
	return readBlob(ctx, g, sqlite.KeyMoodLogs, g.mapper.MoodLogsFromEntry)
}

// MoodLogsOrEmpty reads the mood logs, falling back to an empty list.
func (g *Gateway) MoodLogsOrEmpty(ctx context.Context) []domain.MoodLog {
	return readBlobLenient(ctx, g, sqlite.KeyMoodLogs, g.mapper.MoodLogsFromEntry)
}

// MoodLogsForUpdate reads the mood logs before a rewrite. An undecodable blob
// reads as empty; store failures are still returned.
func (g *Gateway) MoodLogsForUpdate(ctx context.Context) ([]domain.MoodLog, error) {
	return readBlobDiscardingCorrupt(ctx, g, sqlite.KeyMoodLogs, g.mapper.MoodLogsFromEntry)
}

// History reads the history strictly.
func (g *Gateway) History(ctx context.Context) ([]domain.DailyHistory, error) {
	return readBlob(ctx, g, sqlite.KeyHistory, g.mapper.HistoryFromEntry)
}

// HistoryOrEmpty reads the history, falling back to an empty list.
func (g *Gateway) HistoryOrEmpty(ctx context.Context) []domain.DailyHistory {
	return readBlobLenient(ctx, g, sqlite.KeyHistory, g.mapper.HistoryFromEntry)
}

// LastArchiveDate returns the rollover marker. A missing or unparseable marker
// reads as the zero date; only a failing store is an error.
func (g *Gateway) LastArchiveDate(ctx context.Context) (domain.CalendarDate, error) {
	entry, err := g.repo.GetEntry(ctx, sqlite.KeyLastArchiveDate)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return "", nil
		}
		return "", errors.NewStorageReadError(sqlite.KeyLastArchiveDate, err)
	}
	date, err := g.mapper.LastArchiveDateFromEntry(entry)
	if err != nil {
		logging.Warnf("ignoring %s: %v", sqlite.KeyLastArchiveDate, err)
		return "", nil
	}
	return date, nil
}

// SaveTasks replaces the active list.
func (g *Gateway) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	entry, err := g.mapper.TasksToEntry(tasks)
	if err != nil {
		return errors.NewStorageWriteError(sqlite.KeyTasks, 0, err)
	}
	return g.write(ctx, sqlite.KeyTasks, []*sqlite.Entry{entry})
}

// SaveArchive replaces the archive.
func (g *Gateway) SaveArchive(ctx context.Context, archive []domain.ArchivedTask) error {
	entry, err := g.mapper.ArchiveToEntry(archive)
	if err != nil {
		return errors.NewStorageWriteError(sqlite.KeyArchive, 0, err)
	}
	return g.write(ctx, sqlite.KeyArchive, []*sqlite.Entry{entry})
}

// SaveMoodLogs replaces the mood logs.
func (g *Gateway) SaveMoodLogs(ctx context.Context, logs []domain.MoodLog) error {
	entry, err := g.mapper.MoodLogsToEntry(logs)
	if err != nil {
		return errors.NewStorageWriteError(sqlite.KeyMoodLogs, 0, err)
	}
	return g.write(ctx, sqlite.KeyMoodLogs, []*sqlite.Entry{entry})
}

// CommitRollover writes the plan and advances the marker in one transaction.
// On failure nothing is applied and the marker keeps its old value.
func (g *Gateway) CommitRollover(ctx context.Context, plan *domain.RolloverPlan) error {
	const key = "rollover"

	tasks, err := g.mapper.TasksToEntry(plan.Tasks)
	if err != nil {
		return errors.NewStorageWriteError(sqlite.KeyTasks, 0, err)
	}
	entries := []*sqlite.Entry{tasks}

	if plan.ArchiveChanged() {
		archive, err := g.mapper.ArchiveToEntry(plan.Archive)
		if err != nil {
			return errors.NewStorageWriteError(sqlite.KeyArchive, 0, err)
		}
		entries = append(entries, archive)
	}
	if plan.HistoryChanged() {
		history, err := g.mapper.HistoryToEntry(plan.History)
		if err != nil {
			return errors.NewStorageWriteError(sqlite.KeyHistory, 0, err)
		}
		entries = append(entries, history)
	}
	entries = append(entries, g.mapper.LastArchiveDateToEntry(plan.Today))

	return g.write(ctx, key, entries)
}

// PutRaw writes already-encoded entries in one transaction.
func (g *Gateway) PutRaw(ctx context.Context, entries []*sqlite.Entry) error {
	return g.write(ctx, "import", entries)
}

// write stores entries atomically, retrying transient failures.
func (g *Gateway) write(ctx context.Context, key string, entries []*sqlite.Entry) error {
	attempts := 0
	var lastErr error
	for attempts <= g.retries {
		attempts++
		if lastErr = g.repo.PutEntries(ctx, entries); lastErr == nil {
			return nil
		}
		logging.Debugf("write %s failed (attempt %d/%d): %v\n", key, attempts, g.retries+1, lastErr)

		if attempts > g.retries || ctx.Err() != nil {
			break
		}
		g.sleep(g.backoff)
	}
	return errors.NewStorageWriteError(key, attempts, lastErr)
}
