package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/redmark/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// isolated returns options that only see files under dir.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)
	require.NotNil(t, result.Config)
	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".redmark.yml"), `
parser:
  max_nesting: 8
output:
  format: json
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	assert.Equal(t, 8, result.Config.Parser.MaxNesting)
	assert.Equal(t, config.FormatJSON, result.Config.Output.Format)
	assert.Equal(t, config.DefaultRedditBaseURL, result.Config.Parser.RedditBaseURL, "unset keys keep defaults")
	assert.Len(t, result.LoadedFrom, 1)
}

func TestLoad_ProjectConfigFromSubdirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeFile(t, filepath.Join(tmpDir, "redmark.yaml"), "log_level: debug\n")

	subDir := filepath.Join(tmpDir, "docs", "posts")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	result, err := Load(context.Background(), isolated(subDir))
	require.NoError(t, err)
	assert.Equal(t, "debug", result.Config.LogLevel)
}

func TestLoad_ExplicitConfigSkipsProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".redmark.yml"), "output:\n  format: json\n")
	customPath := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, customPath, "output:\n  color: never\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.ColorNever, result.Config.Output.Color)
	assert.Equal(t, config.FormatText, result.Config.Output.Format)
	assert.Equal(t, []string{customPath}, result.LoadedFrom)
	assert.Equal(t, customPath, result.Paths.Explicit)
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.ExplicitPath = filepath.Join(t.TempDir(), "missing.yml")

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load explicit config")
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".redmark.yml")
	writeFile(t, configPath, "output:\n  format: html\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "output.format", verr.Field)
	assert.Equal(t, configPath, verr.FilePath)
}

func TestLoad_UnknownKey(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".redmark.yml"), "parsr:\n  max_nesting: 3\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	require.Error(t, err)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".redmark.yml"), "output:\n  format: json\n  show_ranges: true\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Output: config.OutputConfig{
			Format:     config.FormatYAML,
			ShowRanges: config.Bool(false),
		},
		Strict: true,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatYAML, result.Config.Output.Format)
	assert.False(t, config.BoolValue(result.Config.Output.ShowRanges))
	assert.True(t, result.Config.Strict)
}

func TestLoad_InvalidCLIConfig(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.CLIConfig = &config.Config{Output: config.OutputConfig{Color: "rainbow"}}

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".redmark.yml"), "output:\n  format: json\n")
	t.Setenv("REDMARK_FORMAT", "yaml")
	t.Setenv("REDMARK_DETECT_CODE_LANGUAGE", "true")
	t.Setenv("REDMARK_MAX_NESTING", "4")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatYAML, result.Config.Output.Format)
	assert.True(t, config.BoolValue(result.Config.Parser.DetectCodeLanguage))
	assert.Equal(t, 4, result.Config.Parser.MaxNesting)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("REDMARK_SHOW_RANGES", "maybe")
	require.Error(t, LoadFromEnv(config.NewConfig()))

	t.Setenv("REDMARK_SHOW_RANGES", "")
	t.Setenv("REDMARK_WIDTH", "wide")
	require.Error(t, LoadFromEnv(config.NewConfig()))
}

func TestLoad_UserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	writeFile(t, filepath.Join(home, "redmark", "config.yaml"), "parser:\n  reddit_base_url: https://old.reddit.com\n")

	opts := isolated(t.TempDir())
	opts.IgnoreUserConfig = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "https://old.reddit.com", result.Config.Parser.RedditBaseURL)
	assert.Equal(t, filepath.Join(home, "redmark", "config.yaml"), result.Paths.User)
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".redmark.yml"), "log_level: info\n")

	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestFindProjectConfig_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindProjectConfig(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	override := &config.Config{
		Parser:   config.ParserConfig{DetectCodeLanguage: config.Bool(true)},
		Output:   config.OutputConfig{Width: 100},
		LogLevel: "debug",
	}

	merged := merge(base, override)
	assert.True(t, config.BoolValue(merged.Parser.DetectCodeLanguage))
	assert.Equal(t, 100, merged.Output.Width)
	assert.Equal(t, "debug", merged.LogLevel)
	assert.Equal(t, config.DefaultMaxNesting, merged.Parser.MaxNesting)

	assert.False(t, config.BoolValue(base.Parser.DetectCodeLanguage), "base is not modified")

	assert.Same(t, base, merge(base, nil))
	assert.Same(t, override, merge(nil, override))
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	merged := MergeAll(
		config.NewConfig(),
		&config.Config{LogLevel: "info"},
		&config.Config{LogLevel: "error"},
	)
	assert.Equal(t, "error", merged.LogLevel)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{name: "negative nesting", mutate: func(c *config.Config) { c.Parser.MaxNesting = -1 }, field: "parser.max_nesting"},
		{name: "relative base url", mutate: func(c *config.Config) { c.Parser.RedditBaseURL = "reddit.com" }, field: "parser.reddit_base_url"},
		{name: "bad format", mutate: func(c *config.Config) { c.Output.Format = "xml" }, field: "output.format"},
		{name: "bad color", mutate: func(c *config.Config) { c.Output.Color = "blue" }, field: "output.color"},
		{name: "negative width", mutate: func(c *config.Config) { c.Output.Width = -5 }, field: "output.width"},
		{name: "bad log level", mutate: func(c *config.Config) { c.LogLevel = "loud" }, field: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			result := Validate(cfg)
			require.False(t, result.Valid())
			assert.Equal(t, tt.field, result.Errors[0].Field)
			assert.Contains(t, result.AllMessages()[0], "error: "+tt.field)
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()

		result := Validate(config.NewConfig())
		assert.True(t, result.Valid())
		assert.False(t, result.HasWarnings())
	})

	t.Run("deep nesting warns", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Parser.MaxNesting = 1000
		result := ValidateWithFile(cfg, "x.yml")
		assert.True(t, result.Valid())
		require.True(t, result.HasWarnings())
		assert.Equal(t, "x.yml", result.Warnings[0].FilePath)
	})
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.Len(t, vars, len(envMappings))
	for i := 1; i < len(vars); i++ {
		assert.Less(t, vars[i-1].Name, vars[i].Name)
	}
	assert.Equal(t, "REDMARK_FORMAT", GetEnvVarName("output.format"))
	assert.Empty(t, GetEnvVarName("nope"))
}
