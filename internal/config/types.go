package config

// Config represents the user configuration of cakecutter.
type Config struct {
	// DefaultContext holds default values for template context keys.
	// Values declared by the template win over these.
	DefaultContext map[string]string `koanf:"default_context" yaml:"default_context"`
	// AbbreviationFile is the JSON file mapping abbreviations to expansions.
	AbbreviationFile string `koanf:"abbreviation_file" yaml:"abbreviation_file"`
	// Abbreviations are expansions for template sources such as "gh:owner/repo".
	// "{0}" in a value is replaced by the text after the colon.
	Abbreviations map[string]string `koanf:"abbreviations" yaml:"abbreviations"`
	// Templates configuration for template processing.
	Templates TemplateConfig `koanf:"templates" yaml:"templates"`
	// Output configuration for display and logging.
	Output OutputConfig `koanf:"output" yaml:"output"`
}

// TemplateConfig represents template processing settings.
type TemplateConfig struct {
	// RootMarker is the substring identifying the project root placeholder directory.
	RootMarker string `koanf:"root_marker" yaml:"root_marker"`
	// OutputDir is the default base directory for generated projects.
	OutputDir string `koanf:"output_dir" yaml:"output_dir"`
	// KeepProjectOnFailure keeps partial output when generation fails.
	KeepProjectOnFailure bool `koanf:"keep_project_on_failure" yaml:"keep_project_on_failure"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `koanf:"color" yaml:"color"`
	// Verbosity is the default log verbosity (0 warn, 1 info, 2 debug, 3 trace).
	Verbosity int `koanf:"verbosity" yaml:"verbosity"`
}
