package cli

import (
	"context"
	"fmt"
	"strconv"

	"daily-tracker/internal/api"
	"daily-tracker/internal/domain"
	"daily-tracker/internal/errors"
)

// MoodCommand handles the mood command
type MoodCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewMoodCommand creates a new mood command handler
func NewMoodCommand(app *App) *MoodCommand {
	return &MoodCommand{app: app, businessAPI: app.businessAPI}
}

// Execute logs today's mood
func (c *MoodCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "mood", "usage: dt mood <1-5>")
	}

	mood, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.NewInvalidInputError("mood", args[0], fmt.Sprintf("must be a number from %d to %d", domain.MinMood, domain.MaxMood))
	}

	if err := c.app.load(ctx); err != nil {
		return err
	}

	log, err := c.businessAPI.LogMood(ctx, mood)
	if err != nil {
		return err
	}

	fmt.Printf("Mood for %s: %d/5\n", log.Date, log.Mood)
	return nil
}
