package model

// Template represents one resolved template.
type Template struct {
	// Ref is the template reference (source location), when known.
	Ref TemplateRef
	// Root is the local directory containing the template configuration
	// file and the project root placeholder directory.
	Root string
	// Context is the merged context used for every substitution.
	Context Context
	// OriginalContext is the context captured before generation, without
	// reserved keys. It is computed once and never recomputed.
	OriginalContext Context
	// Abbreviations maps shorthand keys to their expansions.
	Abbreviations map[string]Value
}

// CopyWithoutRender returns the raw _copy_without_render value.
func (t *Template) CopyWithoutRender() (Value, bool) {
	return t.Context.Get(CopyWithoutRenderKey)
}
