// Package app wires user configuration, template acquisition and project
// generation into the workflows the CLI runs.
package app

import (
	"context"

	"github.com/spf13/afero"

	"github.com/baasman/cakecutter/internal/config"
	"github.com/baasman/cakecutter/internal/logging"
	"github.com/baasman/cakecutter/internal/template/descriptor"
	"github.com/baasman/cakecutter/internal/template/generator"
	"github.com/baasman/cakecutter/internal/template/model"
	"github.com/baasman/cakecutter/internal/template/provider"
)

// GenerateOptions contains options for project generation.
type GenerateOptions struct {
	// Template is the template directory, zip archive, git URL or abbreviation.
	Template string
	// Directory is the sub-directory of the source that holds the template.
	Directory string
	// Checkout is the git branch, tag or commit to use (git only).
	Checkout string
	// OutputDir is where the project is created. Defaults to the configured output dir.
	OutputDir string
	// Overwrite allows generating into an existing project directory.
	Overwrite bool
	// KeepOnFailure leaves partial output in place when generation fails.
	KeepOnFailure bool
	// AcceptHooks is passed to the generator; hooks are never run.
	AcceptHooks bool
	// DryRun plans the generation without writing anything.
	DryRun bool
	// Replay asks to re-use a previous run's context. Not supported.
	Replay bool
	// NoInput disables prompting. Prompting does not exist, so this is a no-op.
	NoInput bool
	// Fs is the filesystem for local and zip sources and for output.
	// Defaults to the OS filesystem. Git sources are cloned to disk, so a git
	// run always uses the OS filesystem.
	Fs afero.Fs
}

// GenerateResult holds the result of a generate workflow.
type GenerateResult struct {
	// Ref is the classified template source.
	Ref model.TemplateRef
	// Template is the resolved template, nil when resolution failed.
	Template *model.Template
	// Generation is the generator result, nil when generation never started.
	Generation *generator.GenerateResult
}

// Generate acquires the template, resolves its context and generates the
// project. cfg must not be nil.
func Generate(ctx context.Context, cfg *config.Config, opts GenerateOptions) (*GenerateResult, error) {
	logger := logging.GetLogger("app")
	done := logging.LogOperationStart(logger, "generate workflow")
	defer done()

	result := &GenerateResult{}

	if cfg == nil {
		return result, NewValidationError("configuration is required", nil)
	}
	if opts.Replay {
		return result, NewUnsupportedError("replay is not supported; run without --replay")
	}
	if opts.NoInput {
		logger.Debug().Msg("No-input requested; prompting is never performed")
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	// Read once; expansion runs before acquisition and the descriptor
	// keeps the same table.
	loaded := config.LoadAbbreviations(fs, cfg.AbbreviationFile)
	input := provider.ExpandAbbreviations(opts.Template, mergedAbbreviations(cfg, loaded))
	if input != opts.Template {
		logger.Debug().Str("input", opts.Template).Str("expanded", input).Msg("Expanded template abbreviation")
	}

	ref, err := provider.ParseTemplateInput(fs, input, opts.Directory, opts.Checkout)
	if err != nil {
		return result, err
	}
	result.Ref = ref

	fetched, err := provider.Acquire(ctx, fs, ref)
	if err != nil {
		return result, err
	}
	defer func() {
		if err := fetched.Cleanup(); err != nil {
			logger.Warn().Err(err).Str("root", fetched.Root).Msg("Failed to remove temporary template copy")
		}
	}()

	if ref.Kind == model.SourceGit {
		fs = afero.NewOsFs()
	}

	tmpl, err := descriptor.ResolveWithAbbreviations(fs, fetched.Root, cfg.DefaultContext, loaded)
	if err != nil {
		return result, err
	}
	tmpl.Ref = ref
	result.Template = tmpl

	genOpts := generator.GenerateOptions{
		Template:      tmpl,
		OutputDir:     opts.OutputDir,
		Overwrite:     opts.Overwrite,
		KeepOnFailure: opts.KeepOnFailure || cfg.Templates.KeepProjectOnFailure,
		AcceptHooks:   opts.AcceptHooks,
		RootMarker:    cfg.Templates.RootMarker,
	}
	if genOpts.OutputDir == "" {
		genOpts.OutputDir = cfg.Templates.OutputDir
	}

	gen := generator.NewGenerator(fs)

	if opts.DryRun {
		result.Generation, err = gen.DryRun(ctx, genOpts)
	} else {
		result.Generation, err = gen.Generate(ctx, genOpts)
	}
	return result, err
}

// mergedAbbreviations layers the abbreviation file entries over the
// configured abbreviations.
func mergedAbbreviations(cfg *config.Config, fromFile map[string]model.Value) map[string]string {
	merged := make(map[string]string, len(cfg.Abbreviations))
	for k, v := range cfg.Abbreviations {
		merged[k] = v
	}
	for k, v := range config.StringAbbreviations(fromFile) {
		merged[k] = v
	}
	return merged
}
