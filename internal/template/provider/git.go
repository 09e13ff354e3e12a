package provider

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/spf13/afero"

	"github.com/baasman/cakecutter/internal/logging"
	"github.com/baasman/cakecutter/internal/template/model"
)

// GitProvider implements Provider for git repositories. Repositories are
// cloned into a temporary directory that Cleanup removes.
type GitProvider struct {
	// TempDir is the parent of clone directories. Defaults to the system temp dir.
	TempDir string
}

// NewGitProvider creates a new git provider.
func NewGitProvider() *GitProvider {
	return &GitProvider{}
}

// Name returns the provider name.
func (p *GitProvider) Name() string {
	return "git"
}

// Fetch clones the repository and checks out ref.Checkout when set.
func (p *GitProvider) Fetch(ctx context.Context, ref model.TemplateRef) (*Fetched, error) {
	logger := logging.GetLogger("provider")

	if ref.Kind != model.SourceGit {
		return nil, NewInvalidTemplateError(p.Name(), ref.Location, "not a git template reference", nil)
	}

	dest, err := os.MkdirTemp(p.TempDir, "cakecutter-git-")
	if err != nil {
		return nil, NewFetchError(p.Name(), ref.Location, fmt.Errorf("failed to create temporary directory: %w", err))
	}
	cleanup := func() error { return os.RemoveAll(dest) }

	logger.Info().Str("url", ref.Location).Str("dest", dest).Msg("Cloning template repository")
	repo, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:  ref.Location,
		Tags: git.AllTags,
	})
	if err != nil {
		_ = cleanup()
		return nil, p.classifyCloneError(ctx, ref.Location, err)
	}

	if ref.Checkout != "" {
		if err := checkout(repo, ref.Checkout); err != nil {
			_ = cleanup()
			return nil, NewCheckoutError(p.Name(), ref.Location, ref.Checkout, err)
		}
		logger.Debug().Str("revision", ref.Checkout).Msg("Checked out revision")
	}

	root, err := applyDirectory(afero.NewOsFs(), p.Name(), ref.Location, dest, ref.Directory)
	if err != nil {
		_ = cleanup()
		return nil, err
	}

	return &Fetched{Ref: ref, Root: root, Temporary: true, cleanup: cleanup}, nil
}

// checkout resolves revision as a branch, tag or commit, trying the
// remote-tracking branch when no local branch exists.
func checkout(repo *git.Repository, revision string) error {
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		var remoteErr error
		hash, remoteErr = repo.ResolveRevision(plumbing.Revision("origin/" + revision))
		if remoteErr != nil {
			return err
		}
	}

	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true})
}

func (p *GitProvider) classifyCloneError(ctx context.Context, url string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return NewTimeoutError(p.Name(), url, err)
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return NewProviderError(ProviderNotFound, p.Name(), url, "repository not found", err)
	case errors.Is(err, transport.ErrAuthenticationRequired), errors.Is(err, transport.ErrAuthorizationFailed):
		return NewAuthError(p.Name(), url, err)
	default:
		return NewFetchError(p.Name(), url, err)
	}
}
