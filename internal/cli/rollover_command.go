package cli

import (
	"context"
	"fmt"

	"daily-tracker/internal/api"
	"daily-tracker/internal/errors"
)

// RolloverCommand handles the rollover command
type RolloverCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewRolloverCommand creates a new rollover command handler
func NewRolloverCommand(app *App) *RolloverCommand {
	return &RolloverCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the daily rollover without seeding the habit task
func (c *RolloverCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "rollover", "usage: dt rollover")
	}

	result, err := c.businessAPI.Rollover(ctx)
	if err != nil {
		return err
	}
	if !result.Performed {
		fmt.Printf("Already rolled over for %s\n", result.Date)
		return nil
	}

	fmt.Printf("Rolled over to %s: archived %d, kept %d, reset %d daily\n",
		result.Date, result.Archived, result.Kept, result.Reset)
	if result.History != nil {
		fmt.Println(formatHistory(*result.History, c.app.config.Habit.Label))
	}
	return nil
}
