package cli

import (
	"context"
	"fmt"

	"daily-tracker/internal/api"
	"daily-tracker/internal/errors"
)

// RemoveCommand handles the rm command
type RemoveCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewRemoveCommand creates a new rm command handler
func NewRemoveCommand(app *App) *RemoveCommand {
	return &RemoveCommand{app: app, businessAPI: app.businessAPI}
}

// Execute deletes a task together with its subtasks
func (c *RemoveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "rm", "usage: dt rm <id>")
	}
	if err := c.app.load(ctx); err != nil {
		return err
	}

	if err := c.businessAPI.DeleteTask(ctx, args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted task %s\n", args[0])
	return nil
}
