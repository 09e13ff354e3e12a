package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCommand(globals *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective user configuration",
		Long: `Print the user configuration after defaults, the config file and
CAKECUTTER_* environment variables have been applied.

Examples:
  cakecutter config
  cakecutter config -c ./cakecutter.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(cmd, globals)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return fmt.Errorf("failed to render configuration: %w", err)
			}
			if !globals.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", path)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
