package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/winsnap/internal/render"
	"github.com/1broseidon/winsnap/internal/snapshot"
)

const (
	DefaultLogLevel  = "warn"
	DefaultMaxSizeMB = 10
	DefaultMaxFiles  = 3
)

// LoggingConfig configures diagnostics.
type LoggingConfig struct {
	// Level controls verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty" toml:"level"`
	// File redirects logs from stderr to a rotated file
	File string `yaml:"file,omitempty" toml:"file"`
	// MaxSizeMB is the log file size that triggers rotation (default: 10,
	// 0 disables rotation)
	MaxSizeMB int `yaml:"max_size_mb" toml:"max_size_mb"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files" toml:"max_files"`
}

// Config is the effective winsnap configuration.
type Config struct {
	// OnRecordError is "fail" (abort on the first bad window) or "skip".
	OnRecordError string `yaml:"on_record_error" toml:"on_record_error"`
	// IncludeOffscreen lists minimized and other-desktop windows too.
	IncludeOffscreen bool `yaml:"include_offscreen" toml:"include_offscreen"`
	// Format is text, yaml or json.
	Format string `yaml:"format" toml:"format"`
	// ExcludeOwners hides windows whose owner name matches exactly.
	ExcludeOwners []string      `yaml:"exclude_owners,omitempty" toml:"exclude_owners"`
	Logging       LoggingConfig `yaml:"logging" toml:"logging"`
}

// ValidationError points at the offending key.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DefaultConfig matches the behavior of running without a config file.
func DefaultConfig() *Config {
	return &Config{
		OnRecordError: string(snapshot.PolicyFailFast),
		Format:        string(render.FormatText),
		Logging: LoggingConfig{
			Level:     DefaultLogLevel,
			MaxSizeMB: DefaultMaxSizeMB,
			MaxFiles:  DefaultMaxFiles,
		},
	}
}

// applyDefaults restores string keys a file set to empty. Numeric keys
// keep their decoded value, since the decoder starts from DefaultConfig
// and an explicit 0 is meaningful.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.OnRecordError == "" {
		c.OnRecordError = def.OnRecordError
	}
	if c.Format == "" {
		c.Format = def.Format
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// Validate checks enum values and sizes.
func (c *Config) Validate() error {
	if _, err := snapshot.ParsePolicy(c.OnRecordError); err != nil {
		return &ValidationError{Path: "on_record_error", Err: err}
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		return &ValidationError{Path: "format", Err: err}
	}
	for i, owner := range c.ExcludeOwners {
		if strings.TrimSpace(owner) == "" {
			return &ValidationError{Path: fmt.Sprintf("exclude_owners[%d]", i), Err: fmt.Errorf("owner name must not be empty")}
		}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("logging.level must be one of: debug, info, warn, error")}
	}
	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("logging.max_size_mb must be >= 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("logging.max_files must be >= 0")}
	}
	return nil
}

// Policy returns the parsed record error policy.
func (c *Config) Policy() snapshot.Policy {
	p, err := snapshot.ParsePolicy(c.OnRecordError)
	if err != nil {
		return snapshot.PolicyFailFast
	}
	return p
}

// OutputFormat returns the parsed output format.
func (c *Config) OutputFormat() render.Format {
	f, err := render.ParseFormat(c.Format)
	if err != nil {
		return render.FormatText
	}
	return f
}
