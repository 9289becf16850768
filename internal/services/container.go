package services

import (
	"daily-tracker/internal/config"
	"daily-tracker/internal/repository/sqlite"
	"daily-tracker/internal/validation"
)

// NewServiceContainer wires every service around one gateway and one coordinator.
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config, clock Clock) *ServiceContainer {
	if clock == nil {
		clock = SystemClock{}
	}

	gateway := NewGateway(repo, cfg.Rollover.WriteRetries, cfg.Rollover.RetryBackoff)
	coordinator := NewCoordinator()
	taskValidator := validation.NewTaskValidatorWithConfig(cfg)

	rollover := NewRolloverService(gateway, coordinator, clock, cfg.Habit.Label, cfg.Rollover.RecordIdleDays)

	return &ServiceContainer{
		RolloverService:  rollover,
		TaskService:      NewTaskService(gateway, coordinator, rollover, taskValidator, cfg.Habit.Label, cfg.Habit.TaskID),
		MoodService:      NewMoodService(gateway, coordinator, clock),
		ReportingService: NewReportingService(gateway, coordinator, clock, cfg.Habit.Label, cfg.Display.ReminderNames),
		ImportService:    NewImportService(gateway, coordinator, taskValidator),
	}
}
