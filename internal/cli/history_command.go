package cli

import (
	"context"
	"fmt"
	"strconv"

	"daily-tracker/internal/api"
	"daily-tracker/internal/domain"
	"daily-tracker/internal/errors"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewHistoryCommand creates a new history command handler
func NewHistoryCommand(app *App) *HistoryCommand {
	return &HistoryCommand{app: app, businessAPI: app.businessAPI}
}

// Execute prints the newest history entries; an optional argument overrides the configured limit
func (c *HistoryCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.NewInvalidInputError("command", "history", "usage: dt history [limit]")
	}

	limit := c.app.config.Display.HistoryLimit
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return errors.NewInvalidInputError("limit", args[0], "must be a non-negative number")
		}
		limit = n
	}

	if err := c.app.load(ctx); err != nil {
		return err
	}

	history, err := c.businessAPI.History(ctx, limit)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("No history yet")
		return nil
	}

	for _, h := range history {
		fmt.Println(formatHistory(h, c.app.config.Habit.Label))
	}
	return nil
}

func formatHistory(h domain.DailyHistory, habitLabel string) string {
	mood := "-"
	if h.Mood != nil {
		mood = strconv.Itoa(*h.Mood)
	}
	habit := " "
	if h.BeCreativeCompleted {
		habit = "x"
	}
	return fmt.Sprintf("%s  %3.0f%%  %d/%d  mood %s  [%s] %s",
		h.Date, h.ProgressPercentage, h.TasksCompleted, h.TotalTasks, mood, habit, habitLabel)
}
