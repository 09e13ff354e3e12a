package generator

import (
	"bytes"
	"context"
	"io"

	"github.com/spf13/afero"

	"github.com/baasman/cakecutter/internal/logging"
	"github.com/baasman/cakecutter/internal/template/model"
	"github.com/baasman/cakecutter/internal/template/render"
)

// binarySniffLen is how many leading bytes are checked for NUL bytes.
const binarySniffLen = 512

// Route says how a template file reaches the destination.
type Route int

const (
	// RouteRender renders the file body.
	RouteRender Route = iota
	// RouteCopyOnly copies the file verbatim because it matched a copy-only pattern.
	RouteCopyOnly
	// RouteBinary copies the file verbatim because it looks binary.
	RouteBinary
)

// String returns the string representation of the route.
func (r Route) String() string {
	switch r {
	case RouteRender:
		return "render"
	case RouteCopyOnly:
		return "copy-only"
	case RouteBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Processor decides how each template file is produced and renders text bodies.
type Processor interface {
	// Classify returns the route for the file at path, relPath being its
	// unrendered slash-separated path relative to the project directory.
	Classify(path, relPath string) (Route, error)

	// Process renders a text body. Callers copy other routes verbatim.
	Process(ctx context.Context, relPath string, content []byte, data model.Context) ([]byte, error)
}

// FileProcessor implements Processor.
type FileProcessor struct {
	fs       afero.Fs
	renderer render.Renderer
	patterns *PatternSet
}

// NewFileProcessor creates a new FileProcessor.
func NewFileProcessor(fs afero.Fs, r render.Renderer, patterns *PatternSet) Processor {
	return &FileProcessor{
		fs:       fs,
		renderer: r,
		patterns: patterns,
	}
}

// Classify checks copy-only patterns first, then sniffs for binary content.
func (p *FileProcessor) Classify(path, relPath string) (Route, error) {
	logger := logging.GetLogger("generator")

	if pattern, ok := p.patterns.Match(relPath); ok {
		logger.Debug().Str("file", relPath).Str("pattern", pattern).Msg("Copy-only file")
		return RouteCopyOnly, nil
	}

	head, err := readHead(p.fs, path, binarySniffLen)
	if err != nil {
		return RouteRender, newGeneratorError(GeneratorIOFailed, "failed to read template file", relPath, err)
	}
	if isBinaryContent(head) {
		logger.Debug().Str("file", relPath).Msg("Binary file, copying verbatim")
		return RouteBinary, nil
	}
	return RouteRender, nil
}

// Process renders content with data.
func (p *FileProcessor) Process(ctx context.Context, relPath string, content []byte, data model.Context) ([]byte, error) {
	rendered, err := p.renderer.Render(ctx, string(content), data)
	if err != nil {
		return nil, newGeneratorError(GeneratorRenderFailed, "failed to render file", relPath, err)
	}
	return []byte(rendered), nil
}

// isBinaryContent checks if content appears to be binary by looking for null bytes.
// Checks the first 512 bytes (or entire content if smaller).
func isBinaryContent(content []byte) bool {
	checkLen := len(content)
	if checkLen > binarySniffLen {
		checkLen = binarySniffLen
	}
	return bytes.IndexByte(content[:checkLen], 0) != -1
}

func readHead(fs afero.Fs, path string, n int) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:read], nil
}
