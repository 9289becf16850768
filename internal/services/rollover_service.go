package services

import (
	"context"

	"daily-tracker/internal/domain"
	"daily-tracker/internal/logging"
)

// rolloverServiceImpl implements the RolloverService interface
type rolloverServiceImpl struct {
	gateway        *Gateway
	coordinator    *Coordinator
	clock          Clock
	habitLabel     string
	recordIdleDays bool
}

// NewRolloverService creates a new RolloverService instance
func NewRolloverService(gateway *Gateway, coordinator *Coordinator, clock Clock, habitLabel string, recordIdleDays bool) RolloverService {
	return &rolloverServiceImpl{
		gateway:        gateway,
		coordinator:    coordinator,
		clock:          clock,
		habitLabel:     habitLabel,
		recordIdleDays: recordIdleDays,
	}
}

// MaybeRollover archives yesterday's finished work once per calendar day.
// Calls on a day that has already rolled over change nothing.
func (r *rolloverServiceImpl) MaybeRollover(ctx context.Context) (*RolloverResult, error) {
	var result *RolloverResult
	err := r.coordinator.Do(func() error {
		var err error
		result, err = r.rollover(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *rolloverServiceImpl) rollover(ctx context.Context) (*RolloverResult, error) {
	today := Today(r.clock)

	last, err := r.gateway.LastArchiveDate(ctx)
	if err != nil {
		return nil, err
	}
	if last == today {
		return &RolloverResult{Date: today}, nil
	}

	input := domain.RolloverInput{
		Today:          today,
		HabitLabel:     r.habitLabel,
		RecordIdleDays: r.recordIdleDays,
	}
	if input.Tasks, err = r.gateway.Tasks(ctx); err != nil {
		return nil, err
	}
	if input.Archive, err = r.gateway.Archive(ctx); err != nil {
		return nil, err
	}
	// Mood logs are only read here, so an unreadable blob just drops the mood.
	input.MoodLogs = r.gateway.MoodLogsOrEmpty(ctx)
	if input.History, err = r.gateway.History(ctx); err != nil {
		return nil, err
	}

	plan, err := domain.PlanRollover(input)
	if err != nil {
		return nil, err
	}

	if err := r.gateway.CommitRollover(ctx, plan); err != nil {
		return nil, err
	}

	logging.Debugf("rollover %s -> %s: archived %d, kept %d, reset %d\n",
		last, today, len(plan.Archived), plan.KeptCount, plan.ResetCount)

	return &RolloverResult{
		Date:      today,
		Performed: true,
		Archived:  len(plan.Archived),
		Kept:      plan.KeptCount,
		Reset:     plan.ResetCount,
		History:   plan.HistoryEntry,
	}, nil
}
