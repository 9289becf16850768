package cli

import (
	"context"
	"fmt"

	"daily-tracker/internal/api"
	"daily-tracker/internal/errors"
)

const archiveUsage = "usage: dt archive [clear | rm <id>]"

// ArchiveCommand handles the archive command
type ArchiveCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewArchiveCommand creates a new archive command handler
func NewArchiveCommand(app *App) *ArchiveCommand {
	return &ArchiveCommand{app: app, businessAPI: app.businessAPI}
}

// Execute lists, clears or prunes the archive
func (c *ArchiveCommand) Execute(ctx context.Context, args []string) error {
	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == "clear":
	case len(args) == 2 && args[0] == "rm":
	default:
		return errors.NewInvalidInputError("command", "archive", archiveUsage)
	}

	if err := c.app.load(ctx); err != nil {
		return err
	}

	switch len(args) {
	case 0:
		return c.listArchive(ctx)
	case 1:
		if err := c.businessAPI.ClearArchive(ctx); err != nil {
			return err
		}
		fmt.Println("Archive cleared")
		return nil
	default:
		if err := c.businessAPI.DeleteArchivedTask(ctx, args[1]); err != nil {
			return err
		}
		fmt.Printf("Removed %s from the archive\n", args[1])
		return nil
	}
}

// listArchive prints archived tasks, most recently archived first
func (c *ArchiveCommand) listArchive(ctx context.Context) error {
	archive, err := c.businessAPI.Archive(ctx)
	if err != nil {
		return err
	}
	if len(archive) == 0 {
		fmt.Println("Archive is empty")
		return nil
	}

	for _, a := range archive {
		category := "-"
		if a.Category != "" {
			category = string(a.Category)
		}
		fmt.Printf("%s  %-8s %s  %s\n", a.ArchivedDate, category, a.Text, a.ID)
	}
	return nil
}
