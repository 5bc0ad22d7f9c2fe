// Package config defines core configuration types for redmark.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// Default values for a fresh configuration.
const (
	DefaultMaxNesting    = 32
	DefaultRedditBaseURL = "https://www.reddit.com"
	DefaultLogLevel      = "warn"
)

// OutputFormat specifies how a parsed document is printed.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// ParserConfig holds options passed to the Markdown parser.
type ParserConfig struct {
	// MaxNesting bounds recursion through quotes, lists and inline containers.
	MaxNesting int `yaml:"max_nesting,omitempty"`

	// DetectCodeLanguage guesses the language of code blocks without an
	// info string.
	DetectCodeLanguage *bool `yaml:"detect_code_language,omitempty"`

	// RedditBaseURL is prefixed to relative /r/ and /u/ link targets.
	RedditBaseURL string `yaml:"reddit_base_url,omitempty"`
}

// OutputConfig holds options for printing parsed documents.
type OutputConfig struct {
	// Format is one of text, json or yaml.
	Format OutputFormat `yaml:"format,omitempty"`

	// Color is one of auto, always or never.
	Color ColorMode `yaml:"color,omitempty"`

	// ShowRanges prints byte ranges next to each node.
	ShowRanges *bool `yaml:"show_ranges,omitempty"`

	// Width truncates text in the tree view; 0 uses the terminal width.
	Width int `yaml:"width,omitempty"`
}

// Config is the root configuration structure for redmark.
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Output OutputConfig `yaml:"output"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty"`

	// CLI-level options (not persisted to config files).

	// Strict turns parse diagnostics into a non-zero exit status.
	Strict bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			MaxNesting:         DefaultMaxNesting,
			DetectCodeLanguage: Bool(false),
			RedditBaseURL:      DefaultRedditBaseURL,
		},
		Output: OutputConfig{
			Format:     FormatText,
			Color:      ColorAuto,
			ShowRanges: Bool(false),
		},
		LogLevel: DefaultLogLevel,
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// BoolValue dereferences b, treating nil as false.
func BoolValue(b *bool) bool {
	return b != nil && *b
}
