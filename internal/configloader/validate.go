package configloader

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/yaklabco/redmark/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "output.format").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownLogLevels lists valid log level values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// deepNestingWarning is the nesting limit above which a warning is issued.
const deepNestingWarning = 256

// Validate checks a configuration for errors and warnings. Empty values are
// treated as unset and never fail.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Parser.MaxNesting < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "parser.max_nesting",
			Value:   cfg.Parser.MaxNesting,
			Message: "max_nesting must be positive",
		})
	} else if cfg.Parser.MaxNesting > deepNestingWarning {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "parser.max_nesting",
			Value:   cfg.Parser.MaxNesting,
			Message: fmt.Sprintf("max_nesting %d is unusually deep", cfg.Parser.MaxNesting),
		})
	}

	if base := cfg.Parser.RedditBaseURL; base != "" {
		if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "parser.reddit_base_url",
				Value:   base,
				Message: fmt.Sprintf("invalid base URL %q; must be absolute", base),
			})
		}
	}

	if cfg.Output.Format != "" && !cfg.Output.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.format",
			Value:   cfg.Output.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, yaml", cfg.Output.Format),
		})
	}

	if cfg.Output.Color != "" && !cfg.Output.Color.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.color",
			Value:   cfg.Output.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Output.Color),
		})
	}

	if cfg.Output.Width < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.width",
			Value:   cfg.Output.Width,
			Message: "width must be >= 0 (0 means terminal width)",
		})
	}

	if cfg.LogLevel != "" && !knownLogLevels[strings.ToLower(cfg.LogLevel)] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel),
		})
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
