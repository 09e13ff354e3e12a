package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/baasman/cakecutter/internal/logging"
	"github.com/baasman/cakecutter/internal/template/model"
)

// PatternSet is a compiled set of copy-only patterns.
// Patterns are shell globs in which '*' also matches '/'. Braces are
// literal, so patterns can name unrendered placeholder directories.
type PatternSet struct {
	sources []string
	globs   []glob.Glob
}

// CompilePatterns compiles patterns once per run. Patterns that fail to
// compile are left out of the set and reported in the returned errors.
func CompilePatterns(patterns []string) (*PatternSet, []error) {
	set := &PatternSet{}
	var errs []error
	for _, pattern := range patterns {
		// No separators: '*' is not stopped by '/'.
		g, err := glob.Compile(literalBraces.Replace(pattern))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid copy-only pattern %q: %w", pattern, err))
			continue
		}
		set.sources = append(set.sources, pattern)
		set.globs = append(set.globs, g)
	}
	return set, errs
}

var literalBraces = strings.NewReplacer("{", `\{`, "}", `\}`)

// Match reports whether path matches any pattern, and which one.
// path is slash-normalized before matching.
func (s *PatternSet) Match(path string) (string, bool) {
	if s == nil {
		return "", false
	}
	path = filepath.ToSlash(path)
	for i, g := range s.globs {
		if g.Match(path) {
			return s.sources[i], true
		}
	}
	return "", false
}

// Len returns the number of usable patterns.
func (s *PatternSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.globs)
}

// IsExcluded reports whether path matches any of patterns.
// An unparsable pattern is logged and treated as a non-match.
func IsExcluded(path string, patterns []string) bool {
	set, errs := CompilePatterns(patterns)
	logPatternErrors(errs)
	_, ok := set.Match(path)
	return ok
}

// CopyWithoutRenderPatterns extracts the copy-only patterns from tmpl.
// A missing key yields no patterns; a non-array value or non-string
// elements are logged and ignored.
func CopyWithoutRenderPatterns(tmpl *model.Template) []string {
	logger := logging.GetLogger("generator")

	raw, ok := tmpl.CopyWithoutRender()
	if !ok || raw.IsNull() {
		return nil
	}

	items, ok := raw.AsArray()
	if !ok {
		logger.Warn().
			Str("key", model.CopyWithoutRenderKey).
			Str("kind", raw.Kind().String()).
			Msg("Expected an array of patterns, ignoring")
		return nil
	}

	patterns := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.AsString()
		if !ok {
			logger.Warn().
				Str("key", model.CopyWithoutRenderKey).
				Int("index", i).
				Str("kind", item.Kind().String()).
				Msg("Ignoring non-string pattern")
			continue
		}
		patterns = append(patterns, s)
	}
	return patterns
}

func logPatternErrors(errs []error) {
	if len(errs) == 0 {
		return
	}
	logger := logging.GetLogger("generator")
	for _, err := range errs {
		logger.Warn().Err(err).Msg("Pattern ignored")
	}
}
