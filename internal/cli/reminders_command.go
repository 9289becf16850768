package cli

import (
	"context"
	"fmt"

	"daily-tracker/internal/api"
	"daily-tracker/internal/errors"
)

// RemindersCommand handles the reminders command
type RemindersCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewRemindersCommand creates a new reminders command handler
func NewRemindersCommand(app *App) *RemindersCommand {
	return &RemindersCommand{app: app, businessAPI: app.businessAPI}
}

// Execute prints the reminder text a notification would carry
func (c *RemindersCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "reminders", "usage: dt reminders")
	}
	if err := c.app.load(ctx); err != nil {
		return err
	}

	reminder, err := c.businessAPI.PriorityReminders(ctx)
	if err != nil {
		return err
	}
	if reminder.Summary == "" {
		fmt.Println("No priority tasks")
		return nil
	}

	fmt.Println(reminder.Summary)
	for _, t := range reminder.Tasks {
		fmt.Println(formatTask(t))
	}
	return nil
}
