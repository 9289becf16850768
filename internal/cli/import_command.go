package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"daily-tracker/internal/api"
	"daily-tracker/internal/errors"
)

// ImportCommand handles the import command
type ImportCommand struct {
	app         *App
	businessAPI api.BusinessAPI
	readFile    func(name string) ([]byte, error)
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{app: app, businessAPI: app.businessAPI, readFile: os.ReadFile}
}

// Execute loads an exported key/value JSON object into the store, then rolls over on it
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "import", "usage: dt import <file.json>")
	}

	raw, err := c.readFile(args[0])
	if err != nil {
		return errors.NewInvalidInputError("file", args[0], err.Error())
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return errors.NewInvalidInputError("file", args[0], "must contain a JSON object of key to value")
	}

	// Import before loading: the file may be replacing data the rollover cannot read.
	result, err := c.businessAPI.Import(ctx, data)
	if err != nil {
		return err
	}
	if err := c.app.load(ctx); err != nil {
		return err
	}
	if len(result.Keys) == 0 {
		fmt.Println("Nothing to import")
		return nil
	}

	fmt.Printf("Imported %s\n", strings.Join(result.Keys, ", "))
	return nil
}
