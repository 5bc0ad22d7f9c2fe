package config

import (
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template holding the
// default values. YAML templates carry a comment for every setting.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml":
		return []byte(yamlTemplate), nil
	case "json":
		return templateToJSON(NewConfig())
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

const yamlTemplate = `# redmark configuration
# See: https://github.com/yaklabco/redmark

parser:
  # Deepest nesting of quotes, lists and inline markup before the
  # remaining content is kept as plain text.
  max_nesting: 32

  # Guess the language of code blocks that have no info string.
  detect_code_language: false

  # Base URL for relative /r/ and /u/ link targets.
  reddit_base_url: https://www.reddit.com

output:
  # Tree format: text, json or yaml
  format: text

  # Styled output: auto, always or never
  color: auto

  # Print byte ranges next to each node
  show_ranges: false

  # Truncate text in the tree view (0 = terminal width)
  # width: 0

# Log level: debug, info, warn or error
log_level: warn
`

// templateToJSON renders cfg as indented JSON using the YAML key names.
func templateToJSON(cfg *Config) ([]byte, error) {
	doc := map[string]any{
		"parser": map[string]any{
			"max_nesting":          cfg.Parser.MaxNesting,
			"detect_code_language": BoolValue(cfg.Parser.DetectCodeLanguage),
			"reddit_base_url":      cfg.Parser.RedditBaseURL,
		},
		"output": map[string]any{
			"format":      cfg.Output.Format,
			"color":       cfg.Output.Color,
			"show_ranges": BoolValue(cfg.Output.ShowRanges),
		},
		"log_level": cfg.LogLevel,
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# redmark configuration
# See: https://github.com/yaklabco/redmark`
}
