package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/redmark/internal/logging"
	"github.com/yaklabco/redmark/pkg/config"
	"github.com/yaklabco/redmark/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a redmark configuration file",
		Long: `Create a .redmark.yml configuration file in the current directory
holding every setting at its default value, with comments.

Examples:
  redmark init                      Create .redmark.yml
  redmark init --format json        Create .redmark.json instead
  redmark init --output custom.yml  Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .redmark.yml or .redmark.json)")

	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".redmark.yml"
		if flags.format == "json" {
			outputPath = ".redmark.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Format: flags.format})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'redmark config' to see the effective configuration")

	return nil
}
