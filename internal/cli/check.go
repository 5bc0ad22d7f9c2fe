package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/redmark/internal/logging"
	"github.com/yaklabco/redmark/internal/ui/pretty"
	"github.com/yaklabco/redmark/pkg/config"
	"github.com/yaklabco/redmark/pkg/parser"
	"github.com/yaklabco/redmark/pkg/runner"
)

// ErrUnreadableFiles is returned by check when some files could not be read.
var ErrUnreadableFiles = errors.New("some files could not be read")

type checkFlags struct {
	exclude        []string
	extensions     []string
	jobs           int
	strict         bool
	noContext      bool
	summary        bool
	followSymlinks bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse many Markdown files and report diagnostics",
		Long: `Parse every Markdown file under the given paths in parallel and report
parse diagnostics per file, followed by totals for the whole run.

Hidden files and directories are skipped. Paths default to the current
directory.

Examples:
  redmark check                         # Every .md/.markdown file below .
  redmark check docs/ README.md         # Selected paths
  redmark check --exclude 'vendor/**'   # Skip a directory
  redmark check --strict --jobs 4       # Fail on diagnostics, 4 workers`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "Markdown file extensions (default .md,.markdown)")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 2 when diagnostics are produced")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in diagnostics")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print node statistics per kind")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if flags.jobs < 0 {
		return fmt.Errorf("%w: --jobs must not be negative", ErrUsage)
	}

	cliCfg := &config.Config{Strict: flags.strict}
	if cmd.Flags().Changed(flagColor) {
		color, _ := cmd.Flags().GetString(flagColor)
		cliCfg.Output.Color = config.ColorMode(color)
	}

	loaded, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	result, err := runner.Run(ctx, runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     flags.extensions,
		ExcludeGlobs:   flags.exclude,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           flags.jobs,
		Parser: parser.New(parser.Options{
			MaxNesting:         cfg.Parser.MaxNesting,
			DetectCodeLanguage: config.BoolValue(cfg.Parser.DetectCodeLanguage),
			RedditBaseURL:      cfg.Parser.RedditBaseURL,
			Logger:             logger,
		}),
	})
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Output.Color), out))

	for _, file := range result.Files {
		name := displayPath(workDir, file.Path)

		if file.Error != nil {
			logger.Error("cannot parse file", logging.FieldPath, name, logging.FieldError, file.Error)
			continue
		}
		if len(file.Document.Diagnostics) == 0 {
			continue
		}

		writeString(out, styles.FormatFileHeader(name, len(file.Document.Diagnostics))+"\n")
		for _, diag := range file.Document.Diagnostics {
			writeString(out, styles.FormatDiagnostic(name, file.Document, diag, !flags.noContext))
		}
		writeString(out, "\n")
	}

	writeString(out, styles.FormatRunSummary(result.Stats.FilesParsed, result.Stats.FilesWithDiagnostics, result.Stats.FilesErrored))
	if flags.summary {
		writeString(out, styles.FormatSummary(result.Stats.Totals))
	} else {
		writeString(out, styles.FormatSummaryOneLine(result.Stats.Totals))
	}

	switch {
	case result.HasErrors():
		return ErrUnreadableFiles
	case cfg.Strict && result.HasDiagnostics():
		return ErrDiagnosticsFound
	}
	return nil
}

// displayPath shortens path relative to workDir when it lies below it.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
