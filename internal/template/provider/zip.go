package provider

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/baasman/cakecutter/internal/logging"
	"github.com/baasman/cakecutter/internal/template/model"
)

// maxZipEntrySize caps a single extracted file.
const maxZipEntrySize = 512 << 20

// ZipProvider implements Provider for zip archives. Archives are extracted
// into a temporary directory that Cleanup removes.
type ZipProvider struct {
	fs afero.Fs
	// TempDir is the parent of extraction directories. Defaults to the system temp dir.
	TempDir string
}

// NewZipProvider creates a new zip archive provider.
func NewZipProvider(fs afero.Fs) *ZipProvider {
	return &ZipProvider{fs: fs}
}

// Name returns the provider name.
func (p *ZipProvider) Name() string {
	return "zip"
}

// Fetch extracts the archive. When the archive holds a single top-level
// directory and no configuration file at its root, that directory is the
// template root.
func (p *ZipProvider) Fetch(ctx context.Context, ref model.TemplateRef) (*Fetched, error) {
	logger := logging.GetLogger("provider")

	if ref.Kind != model.SourceZip {
		return nil, NewInvalidTemplateError(p.Name(), ref.Location, "not a zip template reference", nil)
	}

	archive, err := p.fs.Open(ref.Location)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError(p.Name(), ref.Location)
		}
		return nil, NewFetchError(p.Name(), ref.Location, err)
	}
	defer func() { _ = archive.Close() }()

	info, err := archive.Stat()
	if err != nil {
		return nil, NewFetchError(p.Name(), ref.Location, err)
	}

	reader, err := zip.NewReader(archive, info.Size())
	if err != nil {
		return nil, NewInvalidTemplateError(p.Name(), ref.Location, "not a valid zip archive", err)
	}

	dest, err := afero.TempDir(p.fs, p.TempDir, "cakecutter-zip-")
	if err != nil {
		return nil, NewFetchError(p.Name(), ref.Location, fmt.Errorf("failed to create temporary directory: %w", err))
	}
	cleanup := func() error { return p.fs.RemoveAll(dest) }

	logger.Debug().Str("archive", ref.Location).Str("dest", dest).Int("entries", len(reader.File)).Msg("Extracting zip template")
	if err := p.extract(ctx, reader, dest); err != nil {
		_ = cleanup()
		return nil, NewFetchError(p.Name(), ref.Location, err)
	}

	root, err := p.templateRoot(dest)
	if err != nil {
		_ = cleanup()
		return nil, NewFetchError(p.Name(), ref.Location, err)
	}

	root, err = applyDirectory(p.fs, p.Name(), ref.Location, root, ref.Directory)
	if err != nil {
		_ = cleanup()
		return nil, err
	}

	return &Fetched{Ref: ref, Root: root, Temporary: true, cleanup: cleanup}, nil
}

func (p *ZipProvider) extract(ctx context.Context, reader *zip.Reader, dest string) error {
	for _, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := safeJoin(dest, file.Name)
		if err != nil {
			return err
		}

		mode := file.Mode()
		switch {
		case mode.IsDir():
			if err := p.fs.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", file.Name, err)
			}
		case mode&os.ModeSymlink != 0:
			// Links in archives could point anywhere; they are not extracted.
			logger := logging.GetLogger("provider")
			logger.Warn().Str("entry", file.Name).Msg("Skipping symlink in zip archive")
		default:
			if err := p.extractFile(file, target); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *ZipProvider) extractFile(file *zip.File, target string) error {
	if file.UncompressedSize64 > maxZipEntrySize {
		return fmt.Errorf("zip entry %s is too large (%d bytes)", file.Name, file.UncompressedSize64)
	}
	if err := p.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", file.Name, err)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open zip entry %s: %w", file.Name, err)
	}
	defer func() { _ = src.Close() }()

	perm := file.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}
	dst, err := p.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm|0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file.Name, err)
	}

	_, err = io.Copy(dst, io.LimitReader(src, maxZipEntrySize))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}
	return nil
}

// templateRoot descends into a single wrapping directory, as produced by
// zipping a template folder.
func (p *ZipProvider) templateRoot(dest string) (string, error) {
	if ok, _ := afero.Exists(p.fs, filepath.Join(dest, model.ConfigFileName)); ok {
		return dest, nil
	}
	entries, err := afero.ReadDir(p.fs, dest)
	if err != nil {
		return "", err
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(dest, entries[0].Name()), nil
	}
	return dest, nil
}

// safeJoin joins an archive entry name onto dest, rejecting names that
// would land outside dest.
func safeJoin(dest, name string) (string, error) {
	clean := filepath.FromSlash(strings.ReplaceAll(name, `\`, "/"))
	if filepath.IsAbs(clean) || filepath.VolumeName(clean) != "" {
		return "", fmt.Errorf("zip entry %q has an absolute path", name)
	}
	target := filepath.Join(dest, clean)
	if !isSubPath(dest, target) {
		return "", fmt.Errorf("zip entry %q escapes the extraction directory", name)
	}
	return target, nil
}
