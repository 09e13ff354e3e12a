package model

// Special file, directory and key names used by cakecutter.
const (
	// ConfigFileName is the template configuration file name in template root.
	ConfigFileName = "cakecutter.json"
	// DefaultRootMarker is the substring that identifies the project root
	// placeholder directory, as in "{{cakecutter.project_slug}}".
	DefaultRootMarker = "cakecutter"
	// PlaceholderOpen opens a placeholder expression.
	PlaceholderOpen = "{{"
	// PlaceholderClose closes a placeholder expression.
	PlaceholderClose = "}}"
	// ReservedPrefix marks configuration-internal context keys.
	ReservedPrefix = "_"
	// CopyWithoutRenderKey holds the glob patterns of files copied verbatim.
	CopyWithoutRenderKey = "_copy_without_render"
	// ScopeName is the name under which the whole context is exposed to
	// templates in addition to the top level.
	ScopeName = "cakecutter"
)

// SourceKind identifies how a template was acquired.
type SourceKind string

const (
	// SourceLocal is a template directory on the local filesystem.
	SourceLocal SourceKind = "local"
	// SourceZip is a template unpacked from a zip archive.
	SourceZip SourceKind = "zip"
	// SourceGit is a template cloned from a git repository.
	SourceGit SourceKind = "git"
)

// TemplateRef represents a reference to a template source.
type TemplateRef struct {
	// Kind is the acquisition method.
	Kind SourceKind
	// Location is the path or URL of the template source.
	Location string
	// Directory is an optional sub-directory of the source holding the template.
	Directory string
	// Checkout is the git branch, tag, or commit to check out (git only).
	Checkout string
}
