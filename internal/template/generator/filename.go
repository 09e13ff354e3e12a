package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/baasman/cakecutter/internal/logging"
	"github.com/baasman/cakecutter/internal/template/model"
	"github.com/baasman/cakecutter/internal/template/render"
)

// RenderPath renders a slash-separated template-relative path one
// component at a time. Each rendered component must be a single, non-empty
// path element; the result is slash-separated.
func RenderPath(ctx context.Context, r render.Renderer, relPath string, data model.Context) (string, error) {
	logger := logging.GetLogger("generator")

	components := strings.Split(filepath.ToSlash(relPath), "/")
	processed := make([]string, 0, len(components))

	for _, component := range components {
		// Skip empty components (e.g., from leading/trailing slashes)
		if component == "" {
			continue
		}

		rendered, err := r.Render(ctx, component, data)
		if err != nil {
			return "", newGeneratorError(GeneratorRenderFailed,
				fmt.Sprintf("failed to render path component %q", component), relPath, err)
		}

		if rendered != component {
			logger.Trace().Str("from", component).Str("to", rendered).Msg("Rendered path component")
		}

		if err := validateComponent(rendered, component); err != nil {
			return "", newGeneratorError(GeneratorPathError, "invalid path after rendering", relPath, err)
		}

		processed = append(processed, rendered)
	}

	result := strings.Join(processed, "/")
	if err := validateRenderedPath(result, relPath); err != nil {
		return "", newGeneratorError(GeneratorPathError, "invalid path after rendering", relPath, err)
	}
	return result, nil
}

// validateComponent validates a single rendered path component.
func validateComponent(rendered, original string) error {
	if rendered == "." || rendered == ".." {
		return fmt.Errorf("component %q renders to %q (original: %q)", original, rendered, original)
	}
	if strings.ContainsAny(rendered, `/\`) {
		return fmt.Errorf("component %q contains a path separator after rendering (original: %q)", rendered, original)
	}
	if strings.ContainsRune(rendered, 0) {
		return fmt.Errorf("component %q contains a NUL byte after rendering (original: %q)", rendered, original)
	}
	if strings.TrimSpace(rendered) == "" {
		return fmt.Errorf("component %q renders to an empty name", original)
	}
	return nil
}

// validateRenderedPath validates the complete rendered path.
func validateRenderedPath(rendered, original string) error {
	if rendered == "" {
		return fmt.Errorf("path %q renders to an empty path", original)
	}
	if filepath.IsAbs(rendered) {
		return fmt.Errorf("path %q is absolute after rendering (original: %q)", rendered, original)
	}
	cleaned := filepath.Clean(filepath.FromSlash(rendered))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path %q escapes the destination after rendering (original: %q)", rendered, original)
	}
	return nil
}

// renderDestinationName renders the project root placeholder directory name.
// The result must be a single path element.
func renderDestinationName(ctx context.Context, r render.Renderer, name string, data model.Context) (string, error) {
	rendered, err := r.Render(ctx, name, data)
	if err != nil {
		return "", newGeneratorError(GeneratorRenderFailed, "failed to render project directory name", name, err)
	}
	if err := validateComponent(rendered, name); err != nil {
		return "", newGeneratorError(GeneratorPathError, "invalid project directory name", name, err)
	}
	return rendered, nil
}
