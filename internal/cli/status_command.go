package cli

import (
	"context"
	"fmt"

	"daily-tracker/internal/api"
	"daily-tracker/internal/errors"
)

// StatusCommand handles the status command
type StatusCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "status", "usage: dt status")
	}
	if err := c.app.load(ctx); err != nil {
		return err
	}
	return c.showStatus(ctx)
}

// showStatus prints today's progress, one line per category and the reminder text
func (c *StatusCommand) showStatus(ctx context.Context) error {
	status, err := c.businessAPI.GetStatus(ctx)
	if err != nil {
		return err
	}

	p := status.Progress
	fmt.Printf("%s  %.0f%% (%d/%d)\n", p.Date, p.Percentage, p.Completed, p.Total)

	habit := "not yet"
	if p.HabitCompleted {
		habit = "done"
	}
	fmt.Printf("%s: %s\n", c.app.config.Habit.Label, habit)

	if p.Mood != nil {
		fmt.Printf("Mood: %d/5\n", *p.Mood)
	} else {
		fmt.Println("Mood: not logged")
	}

	fmt.Println()
	for _, s := range status.Categories {
		flag := ""
		if s.HasPriority {
			flag = " !"
		}
		fmt.Printf("%-9s %3.0f%%  %d task(s)%s\n", s.Category, s.Progress, s.TaskCount, flag)
	}

	if status.Reminder != nil && status.Reminder.Summary != "" {
		fmt.Println()
		fmt.Println(status.Reminder.Summary)
	}
	return nil
}
