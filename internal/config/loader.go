package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	// configFile overrides the DT_CONFIG_FILE lookup when set
	configFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// WithConfigFile pins the YAML file the loader reads
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, if any
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFile reads an explicitly named file strictly and the default file only if it exists.
func (l *Loader) loadFile() error {
	path := l.configFile
	if path == "" {
		path = os.Getenv("DT_CONFIG_FILE")
	}
	if path != "" {
		return l.config.LoadFromFile(path)
	}

	err := l.config.LoadFromFile(DefaultConfigFile())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir            *string
	DBFilename       *string
	DBQueryTimeout   *time.Duration
	DBWriteTimeout   *time.Duration
	DBDirPermissions *uint32

	// Habit overrides
	HabitLabel  *string
	HabitTaskID *string

	// Rollover overrides
	WriteRetries   *int
	RetryBackoff   *time.Duration
	RecordIdleDays *bool

	// Validation overrides
	TaskTextMaxLength *int

	// Display overrides
	HistoryLimit  *int
	ReminderNames *int

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *overrides.DBWriteTimeout
	}
	if overrides.DBDirPermissions != nil {
		config.Database.DirPermissions = *overrides.DBDirPermissions
	}

	if overrides.HabitLabel != nil {
		config.Habit.Label = *overrides.HabitLabel
	}
	if overrides.HabitTaskID != nil {
		config.Habit.TaskID = *overrides.HabitTaskID
	}

	if overrides.WriteRetries != nil {
		config.Rollover.WriteRetries = *overrides.WriteRetries
	}
	if overrides.RetryBackoff != nil {
		config.Rollover.RetryBackoff = *overrides.RetryBackoff
	}
	if overrides.RecordIdleDays != nil {
		config.Rollover.RecordIdleDays = *overrides.RecordIdleDays
	}

	if overrides.TaskTextMaxLength != nil {
		config.Validation.TaskTextMaxLength = *overrides.TaskTextMaxLength
	}

	if overrides.HistoryLimit != nil {
		config.Display.HistoryLimit = *overrides.HistoryLimit
	}
	if overrides.ReminderNames != nil {
		config.Display.ReminderNames = *overrides.ReminderNames
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
