package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"daily-tracker/internal/api"
	"daily-tracker/internal/config"
	"daily-tracker/internal/errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// APIFactory opens the store described by cfg. The closer is released after the command runs.
type APIFactory func(cfg *config.Config) (api.BusinessAPI, io.Closer, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd          *cobra.Command
	loader       *config.Loader
	factory      APIFactory
	config       *config.Config
	app          *App
	closer       io.Closer
	errorHandler *ErrorHandler
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, factory APIFactory) *RootCommand {
	root := &RootCommand{
		loader:       loader,
		factory:      factory,
		errorHandler: NewErrorHandler(),
	}

	root.cmd = &cobra.Command{
		Use:   "dt",
		Short: "A command-line daily task and mood tracker",
		Long: `Daily Tracker (dt) keeps a short list of today's tasks, a daily habit and a mood score.

At the first use of each day, tasks completed the day before are archived, open
tasks carry over, and the daily habit is reset. A summary of the finished day is
added to the history.

EXAMPLES:
  dt status                                # Today's progress by category
  dt add work "Write the report"           # Add a task to a category
  dt toggle <id>                           # Complete or reopen a task
  dt sub add <id> "Draft outline"          # Add a subtask
  dt mood 4                                # Log today's mood (1-5)
  dt history                               # Recent days, newest first
  dt output format=csv > history.csv       # Export history to CSV
  dt import backup.json                    # Load an exported key/value backup

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults
  The config file is DT_CONFIG_FILE or ~/.dt/config.yaml when it exists.

  Database Configuration:
    DT_DB_DIR                              Database directory (default: ~/.dt)
    DT_DB_FILENAME                         Database filename (default: dt.db)
    DT_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    DT_DB_WRITE_TIMEOUT                    Write timeout (default: 5s)
    DT_DB_DIR_PERMISSIONS                  Directory permissions, octal (default: 0755)

  Habit Configuration:
    DT_HABIT_LABEL                         Daily habit text (default: Be creative)
    DT_HABIT_TASK_ID                       Daily habit task id (default: daily-be-creative)

  Rollover Configuration:
    DT_ROLLOVER_WRITE_RETRIES              Extra attempts for a failed save (default: 2)
    DT_ROLLOVER_RETRY_BACKOFF              Pause between attempts (default: 50ms)
    DT_ROLLOVER_RECORD_IDLE_DAYS           Record history for days with nothing archived (default: false)

  Validation and Display Configuration:
    DT_VALIDATION_TASK_TEXT_MAX            Max task text length (default: 255)
    DT_DISPLAY_HISTORY_LIMIT               Days shown by dt history (default: 30)
    DT_DISPLAY_REMINDER_NAMES              Task names in the reminder text (default: 2)

  Application Configuration:
    DT_APP_TIMEOUT                         Application timeout (default: 60s)
    DT_APP_VERBOSE                         Enable verbose output (default: false)
    DT_DEBUG                               Print debug output

GETTING HELP:
  dt [command] --help                      # Get help for any specific command
  dt completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd.Flags())
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetArgs overrides the arguments cobra parses, for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command and converts failures into user-facing errors
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if r.closer != nil {
		if closeErr := r.closer.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", closeErr)
		}
		r.closer = nil
	}
	return r.errorHandler.HandleSimple(err)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "YAML configuration file (overrides DT_CONFIG_FILE)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides DT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides DT_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides DT_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides DT_DB_WRITE_TIMEOUT)")
	flags.String("db-dir-permissions", "", "Database directory permissions in octal (overrides DT_DB_DIR_PERMISSIONS)")

	// Habit configuration
	flags.String("habit-label", "", "Daily habit text (overrides DT_HABIT_LABEL)")
	flags.String("habit-task-id", "", "Daily habit task id (overrides DT_HABIT_TASK_ID)")

	// Rollover configuration
	flags.Int("write-retries", 0, "Extra attempts for a failed save (overrides DT_ROLLOVER_WRITE_RETRIES)")
	flags.Duration("retry-backoff", 0, "Pause between save attempts (overrides DT_ROLLOVER_RETRY_BACKOFF)")
	flags.Bool("record-idle-days", false, "Record history for idle days (overrides DT_ROLLOVER_RECORD_IDLE_DAYS)")

	// Validation and display configuration
	flags.Int("task-text-max-length", 0, "Maximum task text length (overrides DT_VALIDATION_TASK_TEXT_MAX)")
	flags.Int("history-limit", 0, "Days shown by dt history (overrides DT_DISPLAY_HISTORY_LIMIT)")
	flags.Int("reminder-names", 0, "Task names in reminder text (overrides DT_DISPLAY_REMINDER_NAMES)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides DT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides DT_APP_VERBOSE)")
}

// subcommandSpec describes one cobra subcommand backed by a registry handler.
type subcommandSpec struct {
	name  string
	use   string
	short string
	long  string
	args  cobra.PositionalArgs
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	specs := []subcommandSpec{
		{name: "status", use: "status", short: "Show today's progress", args: cobra.NoArgs,
			long: "Show today's progress, the daily habit, today's mood and one line per category."},
		{name: "list", use: "list [category]", short: "List tasks", args: cobra.MaximumNArgs(1),
			long: `List the active tasks. With a category (work, projects, life, own) only that
category is shown, priority tasks first.`},
		{name: "add", use: "add <category> <text>", short: "Add a task", args: cobra.MinimumNArgs(2)},
		{name: "toggle", use: "toggle <id>", short: "Complete or reopen a task", args: cobra.ExactArgs(1)},
		{name: "expand", use: "expand <id>", short: "Show or hide a task's subtasks", args: cobra.ExactArgs(1)},
		{name: "priority", use: "priority <id>", short: "Flag or unflag a task as priority", args: cobra.ExactArgs(1)},
		{name: "rm", use: "rm <id>", short: "Delete a task and its subtasks", args: cobra.ExactArgs(1)},
		{name: "sub", use: "sub add|toggle|rm|priority <task-id> <text|sub-id>", short: "Manage subtasks",
			args: cobra.MinimumNArgs(3),
			long: `Manage the subtasks of a task.

Examples:
  dt sub add <task-id> "Draft outline"
  dt sub toggle <task-id> <sub-id>
  dt sub priority <task-id> <sub-id>
  dt sub rm <task-id> <sub-id>`},
		{name: "mood", use: "mood <1-5>", short: "Log today's mood", args: cobra.ExactArgs(1)},
		{name: "history", use: "history [limit]", short: "Show daily history, newest first", args: cobra.MaximumNArgs(1)},
		{name: "archive", use: "archive [clear | rm <id>]", short: "Show or prune archived tasks", args: cobra.MaximumNArgs(2)},
		{name: "reminders", use: "reminders", short: "Show the priority reminder text", args: cobra.NoArgs},
		{name: "rollover", use: "rollover", short: "Run the daily rollover now", args: cobra.NoArgs,
			long: "Archive yesterday's completed tasks and reset daily tasks. Does nothing if today has already rolled over."},
		{name: "output", use: "output format=csv", short: "Export history in the specified format", args: cobra.ExactArgs(1)},
		{name: "import", use: "import <file.json>", short: "Import an exported key/value backup", args: cobra.ExactArgs(1),
			long: `Import a JSON object mapping storage keys to values. The keys tasks, archive,
mood_logs, history and last_archive_date are accepted, with or without a leading "@".
Nothing is written unless every value is valid.`},
	}

	for _, spec := range specs {
		name := spec.name
		r.cmd.AddCommand(&cobra.Command{
			Use:   spec.use,
			Short: spec.short,
			Long:  spec.long,
			Args:  spec.args,
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.run(name, args)
			},
		})
	}
}

// run opens the store on first use and dispatches to the registered handler
func (r *RootCommand) run(name string, args []string) error {
	if r.app == nil {
		businessAPI, closer, err := r.factory(r.config)
		if err != nil {
			return err
		}
		r.closer = closer
		r.app = NewAppWithConfig(businessAPI, r.config)
	}

	timeout := r.getAppTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := r.app.registry.Execute(ctx, name, args)
	if err != nil && ctx.Err() == context.DeadlineExceeded && !errors.IsErrorType(err, errors.ErrorTypeTimeout) {
		timeoutErr := errors.NewTimeoutError(name, timeout)
		timeoutErr.Cause = err
		return timeoutErr
	}
	return err
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// loadConfig builds the configuration from defaults, file, environment and flags
func (r *RootCommand) loadConfig(flags *pflag.FlagSet) error {
	if path, _ := flags.GetString("config"); path != "" {
		r.loader.WithConfigFile(path)
	}

	cfg, err := r.loader.LoadWithOverrides(overridesFromFlags(flags))
	if err != nil {
		return err
	}

	r.config = cfg
	if cfg.Application.Verbose {
		r.errorHandler = NewVerboseErrorHandler()
	}
	return nil
}

// overridesFromFlags collects the flags that were set explicitly
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("db-write-timeout") {
		v, _ := flags.GetDuration("db-write-timeout")
		overrides.DBWriteTimeout = &v
	}
	if flags.Changed("db-dir-permissions") {
		s, _ := flags.GetString("db-dir-permissions")
		v := config.ParseUint32WithFallback(s, 8, config.NewConfig().Database.DirPermissions)
		overrides.DBDirPermissions = &v
	}

	if flags.Changed("habit-label") {
		v, _ := flags.GetString("habit-label")
		overrides.HabitLabel = &v
	}
	if flags.Changed("habit-task-id") {
		v, _ := flags.GetString("habit-task-id")
		overrides.HabitTaskID = &v
	}

	if flags.Changed("write-retries") {
		v, _ := flags.GetInt("write-retries")
		overrides.WriteRetries = &v
	}
	if flags.Changed("retry-backoff") {
		v, _ := flags.GetDuration("retry-backoff")
		overrides.RetryBackoff = &v
	}
	if flags.Changed("record-idle-days") {
		v, _ := flags.GetBool("record-idle-days")
		overrides.RecordIdleDays = &v
	}

	if flags.Changed("task-text-max-length") {
		v, _ := flags.GetInt("task-text-max-length")
		overrides.TaskTextMaxLength = &v
	}
	if flags.Changed("history-limit") {
		v, _ := flags.GetInt("history-limit")
		overrides.HistoryLimit = &v
	}
	if flags.Changed("reminder-names") {
		v, _ := flags.GetInt("reminder-names")
		overrides.ReminderNames = &v
	}

	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}
