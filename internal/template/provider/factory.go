package provider

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/baasman/cakecutter/internal/template/model"
)

// NewProvider creates the provider for a template reference kind.
// fs backs the local and zip providers; git always clones to disk.
func NewProvider(kind model.SourceKind, fs afero.Fs) (Provider, error) {
	switch kind {
	case model.SourceLocal:
		return NewLocalProvider(fs), nil
	case model.SourceZip:
		return NewZipProvider(fs), nil
	case model.SourceGit:
		return NewGitProvider(), nil
	default:
		return nil, fmt.Errorf("unknown template source kind %q", kind)
	}
}

// Acquire fetches the template referenced by ref with the matching provider.
func Acquire(ctx context.Context, fs afero.Fs, ref model.TemplateRef) (*Fetched, error) {
	p, err := NewProvider(ref.Kind, fs)
	if err != nil {
		return nil, NewInvalidTemplateError("input", ref.Location, "unsupported template source", err)
	}
	return p.Fetch(ctx, ref)
}
