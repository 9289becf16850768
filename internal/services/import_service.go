package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"daily-tracker/internal/domain"
	"daily-tracker/internal/errors"
	"daily-tracker/internal/repository/sqlite"
	"daily-tracker/internal/validation"
)

// importOrder fixes the order keys are validated and written in.
var importOrder = []string{
	sqlite.KeyTasks,
	sqlite.KeyArchive,
	sqlite.KeyMoodLogs,
	sqlite.KeyHistory,
	sqlite.KeyLastArchiveDate,
}

// importServiceImpl implements the ImportService interface
type importServiceImpl struct {
	gateway       *Gateway
	coordinator   *Coordinator
	mapper        *domain.BlobMapper
	taskValidator *validation.TaskValidator
	moodValidator *validation.MoodValidator
}

// NewImportService creates a new ImportService instance
func NewImportService(gateway *Gateway, coordinator *Coordinator, taskValidator *validation.TaskValidator) ImportService {
	return &importServiceImpl{
		gateway:       gateway,
		coordinator:   coordinator,
		mapper:        domain.NewBlobMapper(),
		taskValidator: taskValidator,
		moodValidator: validation.NewMoodValidator(),
	}
}

// Import validates an exported key/value object and writes it in one
// transaction. Legacy "@"-prefixed keys are accepted. Nothing is written if
// any value is invalid.
func (s *importServiceImpl) Import(ctx context.Context, data map[string]json.RawMessage) (*ImportResult, error) {
	normalized := make(map[string]json.RawMessage, len(data))
	for key, value := range data {
		plain := strings.TrimPrefix(key, "@")
		if !isImportKey(plain) {
			return nil, errors.NewInvalidInputError("key", key, "unknown key")
		}
		normalized[plain] = value
	}

	var entries []*sqlite.Entry
	for _, key := range importOrder {
		raw, ok := normalized[key]
		if !ok || string(raw) == "null" {
			continue
		}
		entry, err := s.canonicalEntry(key, raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return &ImportResult{Keys: []string{}}, nil
	}

	if err := s.coordinator.Do(func() error { return s.gateway.PutRaw(ctx, entries) }); err != nil {
		return nil, err
	}

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	sort.Strings(keys)
	return &ImportResult{Keys: keys}, nil
}

// canonicalEntry decodes, validates and re-encodes one value.
func (s *importServiceImpl) canonicalEntry(key string, raw json.RawMessage) (*sqlite.Entry, error) {
	in := &sqlite.Entry{Key: key, Value: string(raw)}
	invalid := func(err error) error {
		if ve, ok := err.(*validation.ValidationError); ok {
			return errors.NewValidationError(key+": "+ve.GetUserFriendlyMessage(), ve)
		}
		return errors.NewInvalidInputError(key, nil, err.Error())
	}

	switch key {
	case sqlite.KeyTasks:
		tasks, err := s.mapper.TasksFromEntry(in)
		if err != nil {
			return nil, invalid(err)
		}
		for _, t := range tasks {
			if err := s.taskValidator.ValidateTask(t); err != nil {
				return nil, invalid(err)
			}
		}
		return s.mapper.TasksToEntry(tasks)
	case sqlite.KeyArchive:
		archive, err := s.mapper.ArchiveFromEntry(in)
		if err != nil {
			return nil, invalid(err)
		}
		for _, a := range archive {
			if err := s.taskValidator.ValidateTask(a.Task); err != nil {
				return nil, invalid(err)
			}
		}
		return s.mapper.ArchiveToEntry(archive)
	case sqlite.KeyMoodLogs:
		logs, err := s.mapper.MoodLogsFromEntry(in)
		if err != nil {
			return nil, invalid(err)
		}
		for _, l := range logs {
			if err := s.moodValidator.ValidateMoodLog(l); err != nil {
				return nil, invalid(err)
			}
		}
		return s.mapper.MoodLogsToEntry(logs)
	case sqlite.KeyHistory:
		history, err := s.mapper.HistoryFromEntry(in)
		if err != nil {
			return nil, invalid(err)
		}
		return s.mapper.HistoryToEntry(history)
	default:
		date, err := s.mapper.LastArchiveDateFromEntry(in)
		if err != nil {
			return nil, invalid(err)
		}
		return s.mapper.LastArchiveDateToEntry(date), nil
	}
}

func isImportKey(key string) bool {
	for _, k := range importOrder {
		if k == key {
			return true
		}
	}
	return false
}
