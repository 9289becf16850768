package services

import (
	"context"

	"daily-tracker/internal/domain"
	"daily-tracker/internal/validation"
)

// moodServiceImpl implements the MoodService interface
type moodServiceImpl struct {
	gateway       *Gateway
	coordinator   *Coordinator
	clock         Clock
	moodValidator *validation.MoodValidator
}

// NewMoodService creates a new MoodService instance
func NewMoodService(gateway *Gateway, coordinator *Coordinator, clock Clock) MoodService {
	return &moodServiceImpl{
		gateway:       gateway,
		coordinator:   coordinator,
		clock:         clock,
		moodValidator: validation.NewMoodValidator(),
	}
}

// LogMood records today's mood, replacing an earlier entry for today.
// Logs that can no longer be decoded are replaced.
func (m *moodServiceImpl) LogMood(ctx context.Context, mood int) (*domain.MoodLog, error) {
	if err := m.moodValidator.ValidateMood(mood); err != nil {
		return nil, err.(*validation.ValidationError).ToAppError()
	}

	log := domain.MoodLog{Date: Today(m.clock), Mood: mood}
	err := m.coordinator.Do(func() error {
		logs, err := m.gateway.MoodLogsForUpdate(ctx)
		if err != nil {
			return err
		}
		return m.gateway.SaveMoodLogs(ctx, domain.UpsertMood(logs, log))
	})
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// MoodForDate returns the mood logged on date, or nil
func (m *moodServiceImpl) MoodForDate(ctx context.Context, date domain.CalendarDate) (*domain.MoodLog, error) {
	log, ok := domain.FindMood(m.gateway.MoodLogsOrEmpty(ctx), date)
	if !ok {
		return nil, nil
	}
	return &log, nil
}

// ListMoodLogs returns every logged mood in stored order
func (m *moodServiceImpl) ListMoodLogs(ctx context.Context) ([]domain.MoodLog, error) {
	logs := m.gateway.MoodLogsOrEmpty(ctx)
	if logs == nil {
		logs = []domain.MoodLog{}
	}
	return logs, nil
}
