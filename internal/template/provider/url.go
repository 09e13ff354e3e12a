package provider

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/baasman/cakecutter/internal/logging"
	"github.com/baasman/cakecutter/internal/template/model"
)

// ParseTemplateInput classifies a template argument.
//   - an existing directory is a local template
//   - an existing file with a .zip extension is a zip archive
//   - anything else must be a git URL
//
// directory names a sub-directory of the source that holds the template.
// checkout only applies to git sources.
func ParseTemplateInput(fs afero.Fs, input, directory, checkout string) (model.TemplateRef, error) {
	logger := logging.GetLogger("provider")

	input = strings.TrimSpace(input)
	if input == "" {
		return model.TemplateRef{}, NewInvalidURLError("input", input, fmt.Errorf("template cannot be empty"))
	}
	if directory != "" {
		if err := ValidateSubdirectory(directory); err != nil {
			return model.TemplateRef{}, NewInvalidTemplateError("input", input, "invalid template directory", err)
		}
	}

	ref := model.TemplateRef{Location: input, Directory: directory}

	info, err := fs.Stat(input)
	switch {
	case err == nil && info.IsDir():
		ref.Kind = model.SourceLocal
	case err == nil && IsZipPath(input):
		ref.Kind = model.SourceZip
	case err == nil:
		return model.TemplateRef{}, NewInvalidTemplateError("local", input,
			"must provide a directory or a .zip archive, not a file", nil)
	case IsGitURL(input):
		ref.Kind = model.SourceGit
		ref.Checkout = checkout
	default:
		return model.TemplateRef{}, NewInvalidURLError("input", input, err)
	}

	if checkout != "" && ref.Kind != model.SourceGit {
		logger.Warn().Str("checkout", checkout).Str("kind", string(ref.Kind)).Msg("Checkout only applies to git templates, ignoring")
	}

	logger.Debug().
		Str("input", input).
		Str("kind", string(ref.Kind)).
		Str("directory", directory).
		Msg("Template input classified")
	return ref, nil
}

// IsGitURL reports whether s looks like a git remote: a URL with an http,
// https, git or ssh scheme, or an scp-like address such as git@host:path.
func IsGitURL(s string) bool {
	if u, err := url.Parse(s); err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "git", "ssh":
			return u.Host != ""
		}
	}
	at := strings.Index(s, "@")
	return at > 0 && strings.Index(s[at:], ":") > 1
}

// IsZipPath reports whether path has a .zip extension.
func IsZipPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// ExpandAbbreviations expands a template abbreviation.
// An exact key match yields its value. For "prefix:rest" with a known
// prefix, "{0}" in the value is replaced by rest. Anything else is
// returned unchanged.
func ExpandAbbreviations(input string, abbreviations map[string]string) string {
	if expansion, ok := abbreviations[input]; ok {
		return expansion
	}
	prefix, rest, found := strings.Cut(input, ":")
	if !found {
		return input
	}
	expansion, ok := abbreviations[prefix]
	if !ok {
		return input
	}
	return strings.ReplaceAll(expansion, "{0}", rest)
}

// ValidateSubdirectory validates a template sub-directory for security.
// Returns an error if the path is absolute or contains a ".." component.
func ValidateSubdirectory(path string) error {
	if filepath.IsAbs(path) {
		return fmt.Errorf("directory must be relative to the template source: %s", path)
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return fmt.Errorf("directory contains '..' which is not allowed: %s", path)
		}
	}
	return nil
}

// applyDirectory joins the optional sub-directory onto root and checks
// that the result is an existing directory inside root.
func applyDirectory(fs afero.Fs, provider, location, root, directory string) (string, error) {
	if directory == "" {
		return root, nil
	}
	if err := ValidateSubdirectory(directory); err != nil {
		return "", NewInvalidTemplateError(provider, location, "invalid template directory", err)
	}
	dir := filepath.Join(root, directory)
	if !isSubPath(root, dir) {
		return "", NewInvalidTemplateError(provider, location,
			fmt.Sprintf("directory %q escapes the template source", directory), nil)
	}
	info, err := fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", NewInvalidTemplateError(provider, location,
			fmt.Sprintf("directory %q not found in template source", directory), err)
	}
	return dir, nil
}

// isSubPath checks if child is under (or equal to) parent.
func isSubPath(parent, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
