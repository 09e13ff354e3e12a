// Package generator materializes a resolved template into a project
// directory.
package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/baasman/cakecutter/internal/logging"
	"github.com/baasman/cakecutter/internal/template/model"
	"github.com/baasman/cakecutter/internal/template/render"
)

// Generator generates projects from templates.
type Generator interface {
	// Generate creates a project from a template with the given options.
	// On failure the returned result is non-nil and reports the final state.
	Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)

	// DryRun renders everything Generate would write without writing.
	DryRun(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures project generation.
type GenerateOptions struct {
	// Template is the resolved template to generate from.
	Template *model.Template

	// OutputDir is the directory the project directory is created in.
	// Defaults to the current directory.
	OutputDir string

	// Overwrite allows generating into an existing destination.
	Overwrite bool

	// KeepOnFailure leaves partial output in place when generation fails.
	KeepOnFailure bool

	// AcceptHooks is recorded for hook support; hooks are never executed.
	AcceptHooks bool

	// RootMarker identifies the project root placeholder directory.
	// Defaults to model.DefaultRootMarker.
	RootMarker string

	// SkipPreflight disables the render-everything pass that runs before
	// anything is written.
	SkipPreflight bool
}

// State is the final state of a generation run.
type State int

const (
	// StateAborted means the run failed before anything was written.
	StateAborted State = iota
	// StateComplete means every entry was written.
	StateComplete
	// StateRolledBack means the run failed and its output was removed.
	StateRolledBack
	// StateFailed means the run failed and its partial output was kept.
	StateFailed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateAborted:
		return "aborted"
	case StateComplete:
		return "complete"
	case StateRolledBack:
		return "rolled back"
	case StateFailed:
		return "failed (partial output kept)"
	default:
		return "unknown"
	}
}

// DryRunFile contains information about a file that would be created in dry-run mode.
type DryRunFile struct {
	// Path is the output file path.
	Path string
	// Content is the processed file content (nil for copy-only files).
	Content []byte
	// Route says how the file would be produced.
	Route Route
	// Exists indicates if the file already exists.
	Exists bool
	// Symlink is the link target when the entry is a symbolic link.
	Symlink string
}

// GenerateResult contains generation statistics.
type GenerateResult struct {
	// State is the final state of the run.
	State State

	// Destination is the project directory path.
	Destination string

	// DestinationExisted is true when the destination was present before the run.
	DestinationExisted bool

	// FilesCreated is the number of new files created.
	FilesCreated int

	// FilesOverwritten is the number of existing files overwritten.
	FilesOverwritten int

	// FilesCopied is the number of files copied verbatim (copy-only or binary).
	FilesCopied int

	// Symlinks is the number of symbolic links recreated.
	Symlinks int

	// Files contains the output paths of all files written, in walk order.
	Files []string

	// Directories contains the output directories, in walk order.
	Directories []string

	// Warnings contains non-fatal problems (bad patterns, skipped symlinks).
	Warnings []error

	// DryRunFiles contains detailed information for dry-run mode (only populated in dry-run).
	DryRunFiles []DryRunFile
}

// DefaultGenerator implements Generator.
type DefaultGenerator struct {
	fs       afero.Fs
	renderer render.Renderer
}

// NewGenerator creates a generator reading templates from and writing
// projects to fs.
func NewGenerator(fs afero.Fs) Generator {
	return NewGeneratorWithRenderer(fs, render.NewRenderer())
}

// NewGeneratorWithRenderer creates a generator using r for all substitutions.
func NewGeneratorWithRenderer(fs afero.Fs, r render.Renderer) Generator {
	return &DefaultGenerator{
		fs:       fs,
		renderer: r,
	}
}

// Generate creates a project from a template with the given options.
func (g *DefaultGenerator) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	return g.generate(ctx, opts, false)
}

// DryRun simulates project generation without writing files.
func (g *DefaultGenerator) DryRun(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	return g.generate(ctx, opts, true)
}

// run holds the state of one walk over the project directory.
type run struct {
	g         *DefaultGenerator
	data      model.Context
	processor Processor
	writer    Writer
	// projectDir is the template's project root placeholder directory.
	projectDir  string
	destination string
	dryRun      bool
	result      *GenerateResult
	tracker     *rollbackTracker
}

// generate is the internal implementation for both Generate and DryRun.
func (g *DefaultGenerator) generate(ctx context.Context, opts GenerateOptions, dryRun bool) (*GenerateResult, error) {
	result := &GenerateResult{State: StateAborted}

	if err := validateOptions(opts); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, newGeneratorError(GeneratorCancelled, "generation cancelled", "", err)
	}

	logger := logging.GetLogger("generator")
	done := logging.LogOperationStart(logger, "generate")
	defer done()

	tmpl := opts.Template
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "."
	}

	logger.Debug().
		Str("root", tmpl.Root).
		Str("output_dir", outputDir).
		Bool("dry_run", dryRun).
		Bool("overwrite", opts.Overwrite).
		Bool("keep_on_failure", opts.KeepOnFailure).
		Msg("Starting generation")
	if opts.AcceptHooks {
		logger.Info().Msg("Hooks accepted, but hook execution is not supported; continuing without hooks")
	}

	// Resolve the destination.
	dirName, err := FindProjectDir(g.fs, tmpl.Root, opts.RootMarker)
	if err != nil {
		return result, err
	}
	name, err := renderDestinationName(ctx, g.renderer, dirName, tmpl.Context)
	if err != nil {
		return result, err
	}
	writer := NewFileWriter(g.fs)
	destination := filepath.Join(outputDir, name)
	result.Destination = destination
	result.DestinationExisted = writer.Exists(destination)

	if result.DestinationExisted && !opts.Overwrite {
		return result, newGeneratorError(GeneratorDestinationExists,
			"destination already exists (use overwrite to generate into it)", destination, nil)
	}

	patterns, patternErrs := CompilePatterns(CopyWithoutRenderPatterns(tmpl))
	logPatternErrors(patternErrs)
	result.Warnings = append(result.Warnings, patternErrs...)

	r := &run{
		g:           g,
		data:        tmpl.Context,
		processor:   NewFileProcessor(g.fs, g.renderer, patterns),
		writer:      writer,
		projectDir:  filepath.Join(tmpl.Root, dirName),
		destination: destination,
		dryRun:      dryRun,
		result:      result,
	}

	if dryRun {
		result.Directories = append(result.Directories, destination)
		if err := r.walk(ctx); err != nil {
			return result, err
		}
		result.State = StateComplete
		logger.Debug().
			Int("files", len(result.DryRunFiles)).
			Int("directories", len(result.Directories)).
			Msg("Dry run complete, nothing written")
		return result, nil
	}

	if !opts.SkipPreflight {
		if err := r.preflight(ctx); err != nil {
			return result, err
		}
	}

	// Nothing has been written before this point.
	r.tracker = newRollbackTracker(g.fs, destination, result.DestinationExisted)
	if !result.DestinationExisted {
		if err := writer.CreateDir(destination); err != nil {
			return result, err
		}
	}
	result.Directories = append(result.Directories, destination)

	if err := r.walk(ctx); err != nil {
		return result, r.fail(err, opts.KeepOnFailure)
	}

	result.State = StateComplete
	logger.Info().
		Str("destination", destination).
		Int("created", result.FilesCreated).
		Int("overwritten", result.FilesOverwritten).
		Int("copied", result.FilesCopied).
		Int("directories", len(result.Directories)).
		Msg("Project generated")
	return result, nil
}

// fail finalizes a failed run, rolling back unless keep is set.
func (r *run) fail(cause error, keep bool) error {
	logger := logging.GetLogger("generator")

	if keep {
		r.result.State = StateFailed
		logger.Warn().Err(cause).Str("destination", r.destination).Msg("Generation failed, keeping partial project")
		return cause
	}

	if err := r.tracker.rollback(); err != nil {
		r.result.State = StateFailed
		return multierr.Append(cause, err)
	}
	r.result.State = StateRolledBack
	return cause
}

// preflight renders every path and text body without writing, so render
// failures surface before the destination is touched.
func (r *run) preflight(ctx context.Context) error {
	check := *r
	check.dryRun = true
	check.result = &GenerateResult{}
	if err := check.walk(ctx); err != nil {
		return err
	}
	logger := logging.GetLogger("generator")
	logger.Debug().
		Int("files", len(check.result.DryRunFiles)).
		Msg("Preflight passed")
	return nil
}

// walk visits the project directory in pre-order, lexical order per
// directory, and stops at the first error.
func (r *run) walk(ctx context.Context) error {
	return afero.Walk(r.g.fs, r.projectDir, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return newGeneratorError(GeneratorCancelled, "generation cancelled", path, err)
		}
		if walkErr != nil {
			return newGeneratorError(GeneratorIOFailed, "failed to read template entry", path, walkErr)
		}

		rel, err := filepath.Rel(r.projectDir, path)
		if err != nil {
			return newGeneratorError(GeneratorPathError, "failed to compute relative path", path, err)
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		renderedRel, err := RenderPath(ctx, r.g.renderer, rel, r.data)
		if err != nil {
			return r.checkCancelled(ctx, err)
		}
		target := filepath.Join(r.destination, filepath.FromSlash(renderedRel))

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			return r.symlink(path, rel, target)
		case info.IsDir():
			return r.directory(target)
		default:
			return r.file(ctx, path, rel, target, info.Mode())
		}
	})
}

func (r *run) directory(target string) error {
	r.result.Directories = append(r.result.Directories, target)
	if r.dryRun {
		return nil
	}
	if r.writer.Exists(target) {
		return nil
	}
	if err := r.writer.CreateDir(target); err != nil {
		return err
	}
	r.tracker.record(target)
	return nil
}

func (r *run) file(ctx context.Context, path, rel, target string, mode os.FileMode) error {
	logger := logging.GetLogger("generator")

	route, err := r.processor.Classify(path, rel)
	if err != nil {
		return err
	}

	var content []byte
	if route != RouteCopyOnly {
		content, err = afero.ReadFile(r.g.fs, path)
		if err != nil {
			return newGeneratorError(GeneratorIOFailed, "failed to read template file", rel, err)
		}
	}
	if route == RouteRender {
		content, err = r.processor.Process(ctx, rel, content, r.data)
		if err != nil {
			return r.checkCancelled(ctx, err)
		}
	}

	exists := r.writer.Exists(target)
	if r.dryRun {
		r.result.DryRunFiles = append(r.result.DryRunFiles, DryRunFile{
			Path:    target,
			Content: content,
			Route:   route,
			Exists:  exists,
		})
	} else {
		if route == RouteCopyOnly {
			err = r.writer.CopyFile(path, target, mode)
		} else {
			err = r.writer.WriteFile(target, content, mode)
		}
		if err != nil {
			return err
		}
		if !exists {
			r.tracker.record(target)
		}
		logger.Debug().Str("file", rel).Str("target", target).Str("route", route.String()).Msg("File written")
	}

	r.result.Files = append(r.result.Files, target)
	if route != RouteRender {
		r.result.FilesCopied++
	}
	if exists {
		r.result.FilesOverwritten++
	} else {
		r.result.FilesCreated++
	}
	return nil
}

func (r *run) symlink(path, rel, target string) error {
	logger := logging.GetLogger("generator")

	reader, ok := r.g.fs.(afero.LinkReader)
	if !ok {
		return r.skipSymlink(rel, ErrSymlinkUnsupported)
	}
	link, err := reader.ReadlinkIfPossible(path)
	if err != nil {
		return newGeneratorError(GeneratorIOFailed, "failed to read symlink", rel, err)
	}

	if r.dryRun {
		r.result.DryRunFiles = append(r.result.DryRunFiles, DryRunFile{
			Path:    target,
			Exists:  r.writer.Exists(target),
			Symlink: link,
		})
		r.result.Symlinks++
		return nil
	}

	exists := r.writer.Exists(target)
	if err := r.writer.Symlink(link, target); err != nil {
		if errors.Is(err, ErrSymlinkUnsupported) {
			return r.skipSymlink(rel, err)
		}
		return err
	}
	if !exists {
		r.tracker.record(target)
	}
	r.result.Symlinks++
	logger.Debug().Str("file", rel).Str("link", link).Msg("Symlink created")
	return nil
}

func (r *run) skipSymlink(rel string, cause error) error {
	logger := logging.GetLogger("generator")
	logger.Warn().Str("file", rel).Err(cause).Msg("Skipping symlink")
	r.result.Warnings = append(r.result.Warnings,
		newGeneratorError(GeneratorIOFailed, "symlink skipped", rel, cause))
	return nil
}

// checkCancelled reports a render failure caused by cancellation as such.
func (r *run) checkCancelled(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return newGeneratorError(GeneratorCancelled, "generation cancelled", "", ctxErr)
	}
	return err
}

// validateOptions validates GenerateOptions.
func validateOptions(opts GenerateOptions) error {
	if opts.Template == nil {
		return newGeneratorError(GeneratorInvalidOptions, "template cannot be nil", "", nil)
	}
	if opts.Template.Root == "" {
		return newGeneratorError(GeneratorInvalidOptions, "template root cannot be empty", "", nil)
	}
	if opts.Template.Context == nil {
		return newGeneratorError(GeneratorInvalidOptions, "template context cannot be nil", "", nil)
	}
	return nil
}
