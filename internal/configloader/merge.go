package configloader

import "github.com/yaklabco/redmark/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer values: override overwrites base if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Parser.MaxNesting != 0 {
		result.Parser.MaxNesting = override.Parser.MaxNesting
	}
	if override.Parser.DetectCodeLanguage != nil {
		result.Parser.DetectCodeLanguage = config.Bool(*override.Parser.DetectCodeLanguage)
	}
	if override.Parser.RedditBaseURL != "" {
		result.Parser.RedditBaseURL = override.Parser.RedditBaseURL
	}

	if override.Output.Format != "" {
		result.Output.Format = override.Output.Format
	}
	if override.Output.Color != "" {
		result.Output.Color = override.Output.Color
	}
	if override.Output.ShowRanges != nil {
		result.Output.ShowRanges = config.Bool(*override.Output.ShowRanges)
	}
	if override.Output.Width != 0 {
		result.Output.Width = override.Output.Width
	}

	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	// Strict can only be switched on from the command line.
	if override.Strict {
		result.Strict = true
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
