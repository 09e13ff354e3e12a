package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baasman/cakecutter/internal/app"
	"github.com/baasman/cakecutter/internal/template/generator"
)

// generateFlags are the flags of the generate action.
type generateFlags struct {
	outputDir     string
	directory     string
	checkout      string
	overwrite     bool
	keepOnFailure bool
	acceptHooks   bool
	dryRun        bool
	replay        bool
	noInput       bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.outputDir, FlagOutputDir, "o", "", DescOutputDir)
	flags.StringVarP(&f.directory, FlagDirectory, "d", "", DescDirectory)
	flags.StringVar(&f.checkout, FlagCheckout, "", DescCheckout)
	flags.BoolVar(&f.overwrite, FlagOverwrite, false, DescOverwrite)
	flags.BoolVar(&f.keepOnFailure, FlagKeepOnFailure, false, DescKeepOnFailure)
	flags.BoolVar(&f.acceptHooks, FlagAcceptHooks, false, DescAcceptHooks)
	flags.BoolVar(&f.dryRun, FlagDryRun, false, DescDryRun)
	flags.BoolVarP(&f.replay, FlagReplay, "r", false, DescReplay)
	flags.BoolVar(&f.noInput, FlagNoInput, false, DescNoInput)
}

func runGenerate(cmd *cobra.Command, globals *globalOptions, flags *generateFlags, template string) error {
	cfg, _, err := loadConfig(cmd, globals)
	if err != nil {
		return err
	}
	p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), globals.quiet, !globals.noColor && cfg.Output.Color)

	result, err := app.Generate(cmd.Context(), cfg, app.GenerateOptions{
		Template:      template,
		Directory:     flags.directory,
		Checkout:      flags.checkout,
		OutputDir:     flags.outputDir,
		Overwrite:     flags.overwrite,
		KeepOnFailure: flags.keepOnFailure,
		AcceptHooks:   flags.acceptHooks,
		DryRun:        flags.dryRun,
		Replay:        flags.replay,
		NoInput:       flags.noInput,
	})
	if result != nil && result.Generation != nil {
		printWarnings(p, result.Generation)
	}
	if err != nil {
		if result != nil && result.Generation != nil {
			printFailureState(p, result.Generation)
		}
		return exitError(err)
	}

	if flags.dryRun {
		printDryRun(p, result.Generation)
		return nil
	}
	printSummary(p, result.Generation)
	return nil
}

func printWarnings(p *printer, gen *generator.GenerateResult) {
	for _, w := range gen.Warnings {
		p.warning(w.Error())
	}
}

func printFailureState(p *printer, gen *generator.GenerateResult) {
	switch gen.State {
	case generator.StateRolledBack:
		p.failure(fmt.Sprintf("Generation failed; %s was rolled back", gen.Destination))
	case generator.StateFailed:
		p.failure(fmt.Sprintf("Generation failed; partial project kept at %s", gen.Destination))
	}
}

func printDryRun(p *printer, gen *generator.GenerateResult) {
	p.header("Dry run: " + gen.Destination)
	for _, f := range gen.DryRunFiles {
		var note string
		switch {
		case f.Symlink != "":
			note = "symlink to " + f.Symlink
		case f.Exists:
			note = fmt.Sprintf("%s, overwrite, %s", f.Route, formatBytes(int64(len(f.Content))))
		default:
			note = fmt.Sprintf("%s, %s", f.Route, formatBytes(int64(len(f.Content))))
		}
		p.item(f.Path, note)
	}
	p.info(fmt.Sprintf("%d files, %d directories would be written", len(gen.DryRunFiles), len(gen.Directories)))
}

func printSummary(p *printer, gen *generator.GenerateResult) {
	p.success(fmt.Sprintf("Generated %s", gen.Destination))
	p.info(fmt.Sprintf("  %d created, %d overwritten, %d copied verbatim, %d symlinks",
		gen.FilesCreated, gen.FilesOverwritten, gen.FilesCopied, gen.Symlinks))
}
