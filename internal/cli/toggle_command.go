package cli

import (
	"context"
	"fmt"

	"daily-tracker/internal/api"
	"daily-tracker/internal/domain"
	"daily-tracker/internal/errors"
)

// taskFlagAction flips one flag on a task.
type taskFlagAction func(ctx context.Context, businessAPI api.BusinessAPI, id string) (*domain.Task, error)

// ToggleCommand handles the toggle, expand and priority commands
type ToggleCommand struct {
	app         *App
	businessAPI api.BusinessAPI
	name        string
	action      taskFlagAction
	describe    func(t *domain.Task) string
}

// NewToggleCommand flips the completed flag
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{
		app:         app,
		businessAPI: app.businessAPI,
		name:        "toggle",
		action: func(ctx context.Context, b api.BusinessAPI, id string) (*domain.Task, error) {
			return b.ToggleTask(ctx, id)
		},
		describe: func(t *domain.Task) string {
			if t.Completed {
				return "completed"
			}
			return "reopened"
		},
	}
}

// NewExpandCommand flips whether subtasks are shown
func NewExpandCommand(app *App) *ToggleCommand {
	return &ToggleCommand{
		app:         app,
		businessAPI: app.businessAPI,
		name:        "expand",
		action: func(ctx context.Context, b api.BusinessAPI, id string) (*domain.Task, error) {
			return b.ToggleExpand(ctx, id)
		},
		describe: func(t *domain.Task) string {
			if t.IsExpanded {
				return "expanded"
			}
			return "collapsed"
		},
	}
}

// NewPriorityCommand flips the priority flag
func NewPriorityCommand(app *App) *ToggleCommand {
	return &ToggleCommand{
		app:         app,
		businessAPI: app.businessAPI,
		name:        "priority",
		action: func(ctx context.Context, b api.BusinessAPI, id string) (*domain.Task, error) {
			return b.TogglePriority(ctx, id)
		},
		describe: func(t *domain.Task) string {
			if t.Priority {
				return "marked as priority"
			}
			return "no longer priority"
		},
	}
}

// Execute runs the command against one task id
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", c.name, fmt.Sprintf("usage: dt %s <id>", c.name))
	}
	if err := c.app.load(ctx); err != nil {
		return err
	}

	task, err := c.action(ctx, c.businessAPI, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n", task.Text, c.describe(task))
	if c.name == "expand" && task.IsExpanded {
		for _, st := range task.Subtasks {
			fmt.Println(formatSubtask(st))
		}
	}
	return nil
}
