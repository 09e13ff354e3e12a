package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/baasman/cakecutter/internal/template/model"
)

// EnvPrefix prefixes environment variables that override configuration,
// e.g. CAKECUTTER_TEMPLATES__OUTPUT_DIR.
const EnvPrefix = "CAKECUTTER_"

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "CAKECUTTER_CONFIG"

// DefaultAbbreviationFile is the abbreviation file used when none is configured.
const DefaultAbbreviationFile = ".abv.json"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultContext:   map[string]string{},
		AbbreviationFile: DefaultAbbreviationFile,
		Abbreviations:    DefaultAbbreviations(),
		Templates: TemplateConfig{
			RootMarker:           model.DefaultRootMarker,
			OutputDir:            ".",
			KeepProjectOnFailure: false,
		},
		Output: OutputConfig{
			Color:     true,
			Verbosity: 0,
		},
	}
}

// DefaultAbbreviations returns the built-in template source abbreviations.
func DefaultAbbreviations() map[string]string {
	return map[string]string{
		"gh": "https://github.com/{0}.git",
		"gl": "https://gitlab.com/{0}.git",
		"bb": "https://bitbucket.org/{0}",
	}
}

// DefaultConfigPath returns the configuration file path to use when none is
// given explicitly: $CAKECUTTER_CONFIG, else $XDG_CONFIG_HOME/cakecutter/config.json.
func DefaultConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	return filepath.Join(xdg.ConfigHome, "cakecutter", "config.json")
}
