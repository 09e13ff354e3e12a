package render

import (
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	"github.com/iancoleman/strcase"
)

// FilterFunc transforms the text of a substituted value.
type FilterFunc func(string) string

func defaultFilters() map[string]FilterFunc {
	return map[string]FilterFunc{
		"upper":           strings.ToUpper,
		"lower":           strings.ToLower,
		"trim":            strings.TrimSpace,
		"title":           title,
		"snake":           strcase.ToSnake,
		"screaming_snake": strcase.ToScreamingSnake,
		"kebab":           strcase.ToKebab,
		"camel":           strcase.ToCamel,
		"lower_camel":     strcase.ToLowerCamel,
		"slugify":         slug.Make,
	}
}

// title upper-cases the first letter of every space separated word.
func title(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upper := true
	for _, r := range s {
		if upper {
			b.WriteRune(unicode.ToTitle(r))
		} else {
			b.WriteRune(r)
		}
		upper = unicode.IsSpace(r)
	}
	return b.String()
}
