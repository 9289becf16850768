package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"daily-tracker/internal/api"
	"daily-tracker/internal/errors"
)

// OutputCommand handles the output command
type OutputCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the output command
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "output", "usage: dt output format=csv")
	}

	format := args[0]
	if !strings.HasPrefix(format, "format=") {
		return errors.NewInvalidInputError("format", format, "invalid format option")
	}

	format = strings.TrimPrefix(format, "format=")
	switch format {
	case "csv":
		if err := c.app.load(ctx); err != nil {
			return err
		}
		return c.outputCSV(ctx)
	default:
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}
}

// outputCSV writes the whole history, newest first
func (c *OutputCommand) outputCSV(ctx context.Context) error {
	history, err := c.businessAPI.History(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	header := []string{"Date", "Tasks Completed", "Total Tasks", "Progress (%)", "Mood", "Habit Completed"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, h := range history {
		mood := ""
		if h.Mood != nil {
			mood = strconv.Itoa(*h.Mood)
		}
		row := []string{
			string(h.Date),
			strconv.Itoa(h.TasksCompleted),
			strconv.Itoa(h.TotalTasks),
			fmt.Sprintf("%.2f", h.ProgressPercentage),
			mood,
			strconv.FormatBool(h.BeCreativeCompleted),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
