package generator

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/baasman/cakecutter/internal/logging"
)

// ErrSymlinkUnsupported is returned by Symlink when the filesystem cannot
// create links.
var ErrSymlinkUnsupported = errors.New("filesystem does not support symlinks")

// Writer writes files to the filesystem.
type Writer interface {
	// WriteFile writes content to a file with the specified permissions.
	WriteFile(path string, content []byte, mode os.FileMode) error

	// CopyFile copies src to dst byte for byte with the specified permissions.
	CopyFile(src, dst string, mode os.FileMode) error

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error

	// Symlink creates a symbolic link at path pointing to target.
	Symlink(target, path string) error

	// Exists checks if a file, directory or link exists at the given path.
	Exists(path string) bool
}

// FileWriter implements Writer on an afero filesystem.
type FileWriter struct {
	fs afero.Fs
}

// NewFileWriter creates a new FileWriter.
func NewFileWriter(fs afero.Fs) Writer {
	return &FileWriter{fs: fs}
}

// WriteFile writes content to a file with the specified permissions.
// Creates parent directories if they don't exist.
// Writes atomically using a temporary file and rename.
func (w *FileWriter) WriteFile(path string, content []byte, mode os.FileMode) error {
	logger := logging.GetLogger("generator")
	logger.Trace().Str("path", path).Int("size", len(content)).Str("mode", mode.String()).Msg("Writing file")

	return w.writeAtomic(path, mode, func(f afero.File) error {
		_, err := f.Write(content)
		return err
	})
}

// CopyFile copies src to dst byte for byte, atomically.
func (w *FileWriter) CopyFile(src, dst string, mode os.FileMode) error {
	logger := logging.GetLogger("generator")
	logger.Trace().Str("src", src).Str("dst", dst).Msg("Copying file")

	in, err := w.fs.Open(src)
	if err != nil {
		return newGeneratorError(GeneratorIOFailed, "failed to open source file", src, err)
	}
	defer func() { _ = in.Close() }()

	return w.writeAtomic(dst, mode, func(f afero.File) error {
		_, err := io.Copy(f, in)
		return err
	})
}

func (w *FileWriter) writeAtomic(path string, mode os.FileMode, fill func(afero.File) error) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := w.CreateDir(dir); err != nil {
			return err
		}
	}

	// Ensure at least read/write for owner
	fileMode := mode.Perm()
	if fileMode&0600 != 0600 {
		fileMode |= 0600
	}

	f, err := afero.TempFile(w.fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return newGeneratorError(GeneratorIOFailed, "failed to create temporary file", path, err)
	}
	tempFile := f.Name()

	err = fill(f)
	closeErr := f.Close()

	if err != nil {
		_ = w.fs.Remove(tempFile)
		return newGeneratorError(GeneratorIOFailed, "failed to write file content", path, err)
	}
	if closeErr != nil {
		_ = w.fs.Remove(tempFile)
		return newGeneratorError(GeneratorIOFailed, "failed to close file", path, closeErr)
	}
	if err := w.fs.Chmod(tempFile, fileMode); err != nil {
		_ = w.fs.Remove(tempFile)
		return newGeneratorError(GeneratorIOFailed, "failed to set file mode", path, err)
	}
	if err := w.fs.Rename(tempFile, path); err != nil {
		_ = w.fs.Remove(tempFile)
		return newGeneratorError(GeneratorIOFailed, "failed to rename temporary file", path, err)
	}
	return nil
}

// CreateDir creates a directory and any necessary parent directories.
// Uses 0755 permissions for created directories.
func (w *FileWriter) CreateDir(path string) error {
	if err := w.fs.MkdirAll(path, 0755); err != nil {
		return newGeneratorError(GeneratorIOFailed, "failed to create directory", path, err)
	}
	return nil
}

// Symlink creates a symbolic link, replacing an existing entry at path.
// It returns ErrSymlinkUnsupported when the filesystem cannot link.
func (w *FileWriter) Symlink(target, path string) error {
	linker, ok := w.fs.(afero.Linker)
	if !ok {
		return ErrSymlinkUnsupported
	}
	if w.Exists(path) {
		if err := w.fs.Remove(path); err != nil {
			return newGeneratorError(GeneratorIOFailed, "failed to replace existing entry with symlink", path, err)
		}
	}
	if err := linker.SymlinkIfPossible(target, path); err != nil {
		if errors.Is(err, afero.ErrNoSymlink) {
			return ErrSymlinkUnsupported
		}
		return newGeneratorError(GeneratorIOFailed, "failed to create symlink", path, err)
	}
	return nil
}

// Exists checks if a file, directory or link exists at the given path.
func (w *FileWriter) Exists(path string) bool {
	if lstater, ok := w.fs.(afero.Lstater); ok {
		_, _, err := lstater.LstatIfPossible(path)
		return err == nil
	}
	_, err := w.fs.Stat(path)
	return err == nil
}
