package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the daily tracker
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Habit       HabitConfig       `yaml:"habit"`
	Rollover    RolloverConfig    `yaml:"rollover"`
	Validation  ValidationConfig  `yaml:"validation"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `yaml:"dir" env:"DT_DB_DIR"`
	Filename       string        `yaml:"filename" env:"DT_DB_FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"DT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"DT_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"DT_DB_DIR_PERMISSIONS"`
}

// HabitConfig identifies the daily habit task that is seeded on load
type HabitConfig struct {
	Label  string `yaml:"label" env:"DT_HABIT_LABEL"`
	TaskID string `yaml:"task_id" env:"DT_HABIT_TASK_ID"`
}

// RolloverConfig tunes the day-boundary transition
type RolloverConfig struct {
	WriteRetries   int           `yaml:"write_retries" env:"DT_ROLLOVER_WRITE_RETRIES"`
	RetryBackoff   time.Duration `yaml:"retry_backoff" env:"DT_ROLLOVER_RETRY_BACKOFF"`
	RecordIdleDays bool          `yaml:"record_idle_days" env:"DT_ROLLOVER_RECORD_IDLE_DAYS"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskTextMaxLength int `yaml:"task_text_max_length" env:"DT_VALIDATION_TASK_TEXT_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	HistoryLimit  int `yaml:"history_limit" env:"DT_DISPLAY_HISTORY_LIMIT"`
	ReminderNames int `yaml:"reminder_names" env:"DT_DISPLAY_REMINDER_NAMES"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"DT_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"DT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDir(),
			Filename:       "dt.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Habit: HabitConfig{
			Label:  "Be creative",
			TaskID: "daily-be-creative",
		},
		Rollover: RolloverConfig{
			WriteRetries:   2,
			RetryBackoff:   50 * time.Millisecond,
			RecordIdleDays: false,
		},
		Validation: ValidationConfig{
			TaskTextMaxLength: 255,
		},
		Display: DisplayConfig{
			HistoryLimit:  30,
			ReminderNames: 2,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

func defaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".dt")
}

// DefaultConfigFile is consulted when DT_CONFIG_FILE is unset
func DefaultConfigFile() string {
	return filepath.Join(defaultDir(), "config.yaml")
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromFile overlays the YAML file at path. Keys absent from the file keep
// their current values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("parse %s: %v", path, err)}
	}
	return nil
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("DT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("DT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("DT_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("DT_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("DT_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Habit configuration
	if label := os.Getenv("DT_HABIT_LABEL"); label != "" {
		c.Habit.Label = label
	}
	if id := os.Getenv("DT_HABIT_TASK_ID"); id != "" {
		c.Habit.TaskID = id
	}

	// Rollover configuration
	if retries := os.Getenv("DT_ROLLOVER_WRITE_RETRIES"); retries != "" {
		c.Rollover.WriteRetries = ParseIntWithFallback(retries, c.Rollover.WriteRetries)
	}
	if backoff := os.Getenv("DT_ROLLOVER_RETRY_BACKOFF"); backoff != "" {
		c.Rollover.RetryBackoff = ParseDurationWithFallback(backoff, c.Rollover.RetryBackoff)
	}
	if idle := os.Getenv("DT_ROLLOVER_RECORD_IDLE_DAYS"); idle != "" {
		c.Rollover.RecordIdleDays = ParseBoolWithFallback(idle, c.Rollover.RecordIdleDays)
	}

	// Validation configuration
	if maxLen := os.Getenv("DT_VALIDATION_TASK_TEXT_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TaskTextMaxLength = n
		}
	}

	// Display configuration
	if limit := os.Getenv("DT_DISPLAY_HISTORY_LIMIT"); limit != "" {
		c.Display.HistoryLimit = ParseIntWithFallback(limit, c.Display.HistoryLimit)
	}
	if names := os.Getenv("DT_DISPLAY_REMINDER_NAMES"); names != "" {
		c.Display.ReminderNames = ParseIntWithFallback(names, c.Display.ReminderNames)
	}

	// Application configuration
	if timeout := os.Getenv("DT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("DT_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate habit configuration
	if c.Habit.Label == "" {
		return &ConfigError{Field: "habit.label", Message: "habit label cannot be empty"}
	}
	if c.Habit.TaskID == "" {
		return &ConfigError{Field: "habit.task_id", Message: "habit task id cannot be empty"}
	}

	// Validate rollover configuration
	if c.Rollover.WriteRetries < 0 {
		return &ConfigError{Field: "rollover.write_retries", Message: "write retries cannot be negative"}
	}
	if c.Rollover.RetryBackoff < 0 {
		return &ConfigError{Field: "rollover.retry_backoff", Message: "retry backoff cannot be negative"}
	}

	// Validate validation configuration
	if c.Validation.TaskTextMaxLength < 1 {
		return &ConfigError{Field: "validation.task_text_max_length", Message: "task text maximum length must be at least 1"}
	}

	// Validate display configuration
	if c.Display.HistoryLimit < 1 {
		return &ConfigError{Field: "display.history_limit", Message: "history limit must be at least 1"}
	}
	if c.Display.ReminderNames < 1 {
		return &ConfigError{Field: "display.reminder_names", Message: "reminder names must be at least 1"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
