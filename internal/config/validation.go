package config

import (
	"strconv"
	"strings"
)

// Validate checks loaded values. file is only used in error messages.
func (c *Config) Validate(file string) error {
	if strings.TrimSpace(c.Templates.RootMarker) == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, file, "templates.root_marker", "must not be empty")
	}
	if strings.ContainsAny(c.Templates.RootMarker, `/\`) {
		return NewConfigErrorWithField(ConfigValidationFailed, file, "templates.root_marker", "must not contain path separators")
	}
	if c.Output.Verbosity < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, file, "output.verbosity", "must not be negative")
	}
	for name, expansion := range c.Abbreviations {
		if name == "" || strings.Contains(name, ":") {
			return NewConfigErrorWithField(ConfigValidationFailed, file, "abbreviations", "invalid abbreviation name "+strconv.Quote(name))
		}
		if expansion == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, file, "abbreviations."+name, "expansion must not be empty")
		}
	}
	return nil
}
