package cli

import (
	"context"
	"fmt"
	"strings"

	"daily-tracker/internal/api"
	"daily-tracker/internal/config"
	"daily-tracker/internal/domain"
	"daily-tracker/internal/logging"
)

// App represents the main CLI application
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	registry    *CommandRegistry
}

// NewApp creates a new CLI application instance with default configuration
func NewApp(businessAPI api.BusinessAPI) *App {
	return NewAppWithConfig(businessAPI, config.NewConfig())
}

// NewAppWithConfig creates a new CLI application instance with dependency injection
func NewAppWithConfig(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		businessAPI: businessAPI,
		config:      cfg,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	return a.registry.Execute(ctx, args[0], args[1:])
}

// load runs the rollover and habit seeding every command except rollover starts with.
func (a *App) load(ctx context.Context) error {
	result, err := a.businessAPI.Load(ctx)
	if err != nil {
		return err
	}
	if result.Rollover != nil && result.Rollover.Performed {
		logging.Debugf("rolled over to %s: archived=%d kept=%d reset=%d\n",
			result.Rollover.Date, result.Rollover.Archived, result.Rollover.Kept, result.Rollover.Reset)
		if a.config.Application.Verbose && result.Rollover.Archived > 0 {
			fmt.Printf("New day: archived %d completed task(s)\n", result.Rollover.Archived)
		}
	}
	return nil
}

// formatTask renders one task line for list output.
func formatTask(t domain.Task) string {
	var b strings.Builder
	b.WriteString(checkbox(t.Completed))
	b.WriteString(" ")
	if t.Priority {
		b.WriteString("! ")
	}
	b.WriteString(t.Text)
	if t.IsDaily {
		b.WriteString(" (daily)")
	}
	if t.HasSubtasks() && !t.IsExpanded {
		done := 0
		for _, st := range t.Subtasks {
			if st.Completed {
				done++
			}
		}
		fmt.Fprintf(&b, " [%d/%d]", done, len(t.Subtasks))
	}
	fmt.Fprintf(&b, "  %s", t.ID)
	return b.String()
}

func formatSubtask(st domain.SubTask) string {
	line := "    " + checkbox(st.Completed) + " "
	if st.Priority {
		line += "! "
	}
	return line + st.Text + "  " + st.ID
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// printTasks prints tasks, with subtasks under expanded tasks.
func printTasks(tasks []domain.Task) {
	for _, t := range tasks {
		fmt.Println(formatTask(t))
		if !t.IsExpanded {
			continue
		}
		for _, st := range t.Subtasks {
			fmt.Println(formatSubtask(st))
		}
	}
}
