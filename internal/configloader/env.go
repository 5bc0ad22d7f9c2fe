package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/redmark/pkg/config"
)

// envVarPrefix is the prefix for all redmark environment variables.
const envVarPrefix = "REDMARK_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MAX_NESTING":          {field: "parser.max_nesting", typ: envTypeInt, description: "Maximum nesting depth"},
	"DETECT_CODE_LANGUAGE": {field: "parser.detect_code_language", typ: envTypeBool, description: "Guess code block languages: true or false"},
	"REDDIT_BASE_URL":      {field: "parser.reddit_base_url", typ: envTypeString, description: "Base URL for /r/ and /u/ links"},
	"FORMAT":               {field: "output.format", typ: envTypeString, description: "Output format: text, json, or yaml"},
	"COLOR":                {field: "output.color", typ: envTypeString, description: "Color mode: auto, always, or never"},
	"SHOW_RANGES":          {field: "output.show_ranges", typ: envTypeBool, description: "Print byte ranges: true or false"},
	"WIDTH":                {field: "output.width", typ: envTypeInt, description: "Text width of the tree view (0 = terminal)"},
	"LOG_LEVEL":            {field: "log_level", typ: envTypeString, description: "Log level: debug, info, warn, or error"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with REDMARK_ (e.g., REDMARK_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "parser.reddit_base_url":
		cfg.Parser.RedditBaseURL = value
	case "output.format":
		cfg.Output.Format = config.OutputFormat(value)
	case "output.color":
		cfg.Output.Color = config.ColorMode(value)
	case "log_level":
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "parser.detect_code_language":
		cfg.Parser.DetectCodeLanguage = config.Bool(value)
	case "output.show_ranges":
		cfg.Output.ShowRanges = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "parser.max_nesting":
		cfg.Parser.MaxNesting = value
	case "output.width":
		cfg.Output.Width = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Field       string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{
			Name:        envVarPrefix + suffix,
			Field:       mapping.field,
			Description: mapping.description,
		})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
