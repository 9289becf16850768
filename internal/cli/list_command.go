package cli

import (
	"context"
	"fmt"

	"daily-tracker/internal/api"
	"daily-tracker/internal/domain"
	"daily-tracker/internal/errors"
)

// ListCommand handles the list command
type ListCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.NewInvalidInputError("command", "list", "usage: dt list [category]")
	}
	if err := c.app.load(ctx); err != nil {
		return err
	}

	if len(args) == 0 {
		return c.listAll(ctx)
	}
	return c.listCategory(ctx, args[0])
}

// listAll prints the whole active list in stored order
func (c *ListCommand) listAll(ctx context.Context) error {
	tasks, err := c.businessAPI.ListTasks(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks")
		return nil
	}
	printTasks(tasks)
	return nil
}

// listCategory prints one category with priority tasks first
func (c *ListCommand) listCategory(ctx context.Context, name string) error {
	category, err := domain.ParseCategory(name)
	if err != nil {
		return errors.NewInvalidInputError("category", name, "must be one of work, projects, life, own")
	}

	tasks, err := c.businessAPI.ListCategory(ctx, category)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Printf("No %s tasks\n", category)
		return nil
	}
	printTasks(tasks)
	return nil
}
