package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/redmark/internal/configloader"
	"github.com/yaklabco/redmark/internal/ui/pretty"
	"github.com/yaklabco/redmark/pkg/config"
)

func newConfigCommand() *cobra.Command {
	var showEnv bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration redmark would use in the current directory,
after merging the system, user, project and explicit config files with
REDMARK_* environment variables.

Examples:
  redmark config                  Effective configuration as YAML
  redmark config --env            List supported environment variables`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showEnv {
				return printEnvVars(cmd)
			}
			return printEffectiveConfig(cmd)
		},
	}

	cmd.Flags().BoolVar(&showEnv, "env", false, "list supported environment variables")

	return cmd
}

func printEffectiveConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliCfg := &config.Config{}
	if cmd.Flags().Changed(flagColor) {
		color, _ := cmd.Flags().GetString(flagColor)
		cliCfg.Output.Color = config.ColorMode(color)
	}

	loaded, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	header := config.DefaultTemplateHeader()
	if len(loaded.LoadedFrom) > 0 {
		header += "\n# Loaded from:\n#   " + strings.Join(loaded.LoadedFrom, "\n#   ")
	}

	content, err := loaded.Config.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}

	if _, err := cmd.OutOrStdout().Write(content); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func printEnvVars(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	color, _ := cmd.Flags().GetString(flagColor)
	styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))

	vars := configloader.ListEnvVars()
	rows := make([][]string, 0, len(vars))
	for _, v := range vars {
		rows = append(rows, []string{v.Name, v.Field, v.Description})
	}

	if _, err := fmt.Fprint(out, styles.FormatTable([]string{"NAME", "FIELD", "DESCRIPTION"}, rows)); err != nil {
		return fmt.Errorf("write env vars: %w", err)
	}
	return nil
}
