package provider

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/baasman/cakecutter/internal/logging"
	"github.com/baasman/cakecutter/internal/template/model"
)

// LocalProvider implements Provider for template directories.
type LocalProvider struct {
	fs afero.Fs
}

// NewLocalProvider creates a new local filesystem provider.
func NewLocalProvider(fs afero.Fs) *LocalProvider {
	return &LocalProvider{fs: fs}
}

// Name returns the provider name.
func (p *LocalProvider) Name() string {
	return "local"
}

// Fetch resolves the template directory. Nothing is copied, and Cleanup
// does nothing.
func (p *LocalProvider) Fetch(ctx context.Context, ref model.TemplateRef) (*Fetched, error) {
	logger := logging.GetLogger("provider")

	if ref.Kind != model.SourceLocal {
		return nil, NewInvalidTemplateError(p.Name(), ref.Location, "not a local template reference", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewFetchError(p.Name(), ref.Location, err)
	}

	root := filepath.Clean(ref.Location)
	info, err := p.fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError(p.Name(), ref.Location)
		}
		return nil, NewFetchError(p.Name(), ref.Location, err)
	}
	if !info.IsDir() {
		return nil, NewInvalidTemplateError(p.Name(), ref.Location, "path must be a directory", nil)
	}

	root, err = applyDirectory(p.fs, p.Name(), ref.Location, root, ref.Directory)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("root", root).Msg("Using local template")
	return &Fetched{Ref: ref, Root: root}, nil
}
