// Package provider makes template sources available on the local
// filesystem: directories, zip archives and git repositories.
package provider

import (
	"context"

	"github.com/baasman/cakecutter/internal/template/model"
)

// Provider abstracts template source locations.
type Provider interface {
	// Fetch makes the template referenced by ref available locally.
	// Callers must call Cleanup on the result when done with it.
	Fetch(ctx context.Context, ref model.TemplateRef) (*Fetched, error)

	// Name returns the provider name (e.g., "git", "local").
	Name() string
}

// Fetched is a template available on the local filesystem.
type Fetched struct {
	// Ref is the reference the template was fetched from.
	Ref model.TemplateRef
	// Root is the directory holding the template configuration file.
	Root string
	// Temporary is true when Root lives in a directory created by the fetch.
	Temporary bool

	cleanup func() error
}

// Cleanup removes anything the fetch created. It is safe to call more than once.
func (f *Fetched) Cleanup() error {
	if f == nil || f.cleanup == nil {
		return nil
	}
	cleanup := f.cleanup
	f.cleanup = nil
	return cleanup()
}
