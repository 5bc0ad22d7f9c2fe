package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/redmark/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Persistent flag names shared by subcommands.
const (
	flagDebug  = "debug"
	flagConfig = "config"
	flagColor  = "color"
)

// NewRootCommand creates the root redmark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "redmark",
		Short: "Parse Reddit-flavored Markdown into a syntax tree",
		Long: `redmark parses Reddit-flavored Markdown into a tree of block and inline
nodes and prints it as an indented tree, JSON or YAML.

Besides the usual paragraphs, headers, quotes, lists, code and tables it
understands strikethrough, superscript, reference links, bare URLs and
/r/subreddit and /u/user mentions. Malformed markup never fails to parse;
it degrades to plain paragraphs and text.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, flagDebug, false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, flagColor, "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

// usageArgs wraps an argument validator so its errors map to ExitInvalidUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
