package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/redmark/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of redmark.`,
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")
			logger.SetPrefix("")

			logger.Info("redmark",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
		},
	}
}
