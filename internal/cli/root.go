// Package cli implements the cakecutter command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/baasman/cakecutter/internal/app"
	"github.com/baasman/cakecutter/internal/config"
	"github.com/baasman/cakecutter/internal/logging"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	verbosity  int
	debug      bool
	noColor    bool
	quiet      bool
}

// NewRootCommand builds the command tree. Running the root command with a
// template argument generates a project.
func NewRootCommand() *cobra.Command {
	globals := &globalOptions{}
	genOpts := &generateFlags{}

	rootCmd := &cobra.Command{
		Use:   "cakecutter [flags] <template>",
		Short: "Generate projects from templates",
		Long: `cakecutter generates a project directory from a template.

A template is a directory, a .zip archive or a git repository containing
cakecutter.json and a single project directory whose name is a
placeholder such as {{cakecutter.project_slug}}. Every path and text file
under it is rendered with the template context.

Examples:
  cakecutter ./templates/service
  cakecutter gh:owner/template --checkout v1.2.0 -o ~/src
  cakecutter https://example.com/templates.git -d go/cli --dry-run`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd, globals, nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, globals, genOpts, args[0])
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&globals.configPath, FlagConfig, "c", "", DescConfig)
	pf.CountVarP(&globals.verbosity, FlagVerbose, "v", DescVerbose)
	pf.BoolVar(&globals.debug, FlagDebug, false, DescDebug)
	pf.BoolVar(&globals.noColor, FlagNoColor, false, DescNoColor)
	pf.BoolVarP(&globals.quiet, FlagQuiet, "q", false, DescQuiet)

	genOpts.register(rootCmd)

	rootCmd.AddCommand(newConfigCommand(globals))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	err := fang.Execute(
		ctx,
		NewRootCommand(),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// setupLogging installs the logger. Configured verbosity applies when no
// -v flag was given.
func setupLogging(cmd *cobra.Command, globals *globalOptions, cfg *config.Config) {
	verbosity := globals.verbosity
	noColor := globals.noColor
	if cfg != nil {
		if !cmd.Flags().Changed(FlagVerbose) {
			verbosity = cfg.Output.Verbosity
		}
		noColor = noColor || !cfg.Output.Color
	}
	logging.Setup(logging.Options{
		Verbosity: verbosity,
		Debug:     globals.debug,
		NoColor:   noColor,
		Writer:    cmd.ErrOrStderr(),
	})
}

// loadConfig loads the user config and reapplies logging settings from it.
func loadConfig(cmd *cobra.Command, globals *globalOptions) (*config.Config, string, error) {
	cfg, path, err := app.LoadConfig(globals.configPath)
	if err != nil {
		return nil, path, exitError(err)
	}
	setupLogging(cmd, globals, cfg)
	return cfg, path, nil
}

// exitError wraps err with the exit code of its kind.
func exitError(err error) error {
	kind := app.Classify(err)
	return &ExitError{Code: kind.ExitCode(), Err: fmt.Errorf("%s: %w", kind, err)}
}
