package cli

import (
	"context"
	"sort"
	"strings"

	"daily-tracker/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("status", NewStatusCommand(app))
	registry.Register("list", NewListCommand(app))
	registry.Register("add", NewAddCommand(app))
	registry.Register("toggle", NewToggleCommand(app))
	registry.Register("expand", NewExpandCommand(app))
	registry.Register("priority", NewPriorityCommand(app))
	registry.Register("rm", NewRemoveCommand(app))
	registry.Register("sub", NewSubtaskCommand(app))
	registry.Register("mood", NewMoodCommand(app))
	registry.Register("history", NewHistoryCommand(app))
	registry.Register("archive", NewArchiveCommand(app))
	registry.Register("reminders", NewRemindersCommand(app))
	registry.Register("rollover", NewRolloverCommand(app))
	registry.Register("output", NewOutputCommand(app))
	registry.Register("import", NewImportCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// Names returns the registered command names in alphabetical order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	return "usage: dt <command> [args]; commands: " + strings.Join(r.Names(), ", ")
}
