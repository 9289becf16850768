package cli

import (
	"context"
	"fmt"
	"strings"

	"daily-tracker/internal/api"
	"daily-tracker/internal/domain"
	"daily-tracker/internal/errors"
)

const subtaskUsage = "usage: dt sub add <task-id> <text> | dt sub toggle|rm|priority <task-id> <sub-id>"

// SubtaskCommand handles the sub command and its actions
type SubtaskCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewSubtaskCommand creates a new sub command handler
func NewSubtaskCommand(app *App) *SubtaskCommand {
	return &SubtaskCommand{app: app, businessAPI: app.businessAPI}
}

// Execute dispatches on the action named by the first argument
func (c *SubtaskCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.NewInvalidInputError("command", "sub", subtaskUsage)
	}

	action, taskID, rest := args[0], args[1], args[2:]
	var run func() (*domain.Task, error)

	switch action {
	case "add":
		run = func() (*domain.Task, error) {
			return c.businessAPI.AddSubtask(ctx, taskID, strings.Join(rest, " "))
		}
	case "toggle", "rm", "priority":
		if len(rest) != 1 {
			return errors.NewInvalidInputError("command", "sub "+action, subtaskUsage)
		}
		run = c.subtaskAction(ctx, action, taskID, rest[0])
	default:
		return errors.NewInvalidInputError("action", action, subtaskUsage)
	}

	if err := c.app.load(ctx); err != nil {
		return err
	}
	parent, err := run()
	if err != nil {
		return err
	}

	fmt.Println(formatTask(*parent))
	for _, st := range parent.Subtasks {
		fmt.Println(formatSubtask(st))
	}
	return nil
}

func (c *SubtaskCommand) subtaskAction(ctx context.Context, action, taskID, subtaskID string) func() (*domain.Task, error) {
	return func() (*domain.Task, error) {
		switch action {
		case "toggle":
			return c.businessAPI.ToggleSubtask(ctx, taskID, subtaskID)
		case "priority":
			return c.businessAPI.ToggleSubtaskPriority(ctx, taskID, subtaskID)
		default:
			return c.businessAPI.DeleteSubtask(ctx, taskID, subtaskID)
		}
	}
}
