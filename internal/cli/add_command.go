package cli

import (
	"context"
	"fmt"
	"strings"

	"daily-tracker/internal/api"
	"daily-tracker/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "add", "usage: dt add <category> <text>")
	}
	if err := c.app.load(ctx); err != nil {
		return err
	}

	task, err := c.businessAPI.AddTask(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	fmt.Printf("Added %q to %s (%s)\n", task.Text, task.Category, task.ID)
	return nil
}
