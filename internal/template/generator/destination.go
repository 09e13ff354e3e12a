package generator

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/baasman/cakecutter/internal/logging"
	"github.com/baasman/cakecutter/internal/template/model"
)

// FindProjectDir returns the name of the project root placeholder directory
// among the immediate children of root.
//
// Candidates are directories whose name starts with "{{". The one whose
// name contains marker is chosen; when none contains it, a single candidate
// is accepted on its own. No candidate, or more than one, is an error.
func FindProjectDir(fs afero.Fs, root, marker string) (string, error) {
	logger := logging.GetLogger("generator")
	if marker == "" {
		marker = model.DefaultRootMarker
	}

	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return "", newGeneratorError(GeneratorIOFailed, "failed to read template root", root, err)
	}

	var candidates, marked []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), model.PlaceholderOpen) {
			continue
		}
		candidates = append(candidates, entry.Name())
		if strings.Contains(entry.Name(), marker) {
			marked = append(marked, entry.Name())
		}
	}

	logger.Debug().
		Str("root", root).
		Strs("candidates", candidates).
		Strs("marked", marked).
		Msg("Searching for project directory")

	switch {
	case len(marked) == 1:
		return marked[0], nil
	case len(marked) > 1:
		return "", newGeneratorError(GeneratorDestinationNotFound,
			fmt.Sprintf("ambiguous project directory: %d directories contain %q", len(marked), marker), root, nil)
	case len(candidates) == 1:
		return candidates[0], nil
	case len(candidates) > 1:
		return "", newGeneratorError(GeneratorDestinationNotFound,
			fmt.Sprintf("ambiguous project directory: %d placeholder directories and none contains %q", len(candidates), marker), root, nil)
	default:
		return "", newGeneratorError(GeneratorDestinationNotFound,
			fmt.Sprintf("no project directory found (expected a directory named like %s%s.project_name%s)",
				model.PlaceholderOpen, marker, model.PlaceholderClose), root, nil)
	}
}
