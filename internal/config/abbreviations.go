package config

import (
	"github.com/spf13/afero"

	"github.com/baasman/cakecutter/internal/logging"
	"github.com/baasman/cakecutter/internal/template/model"
)

// LoadAbbreviations reads a JSON object of abbreviations from path.
// A missing, unreadable or malformed file yields an empty map and a warning.
// An empty path yields an empty map silently.
func LoadAbbreviations(fs afero.Fs, path string) map[string]model.Value {
	abbreviations := map[string]model.Value{}
	if path == "" {
		return abbreviations
	}

	logger := logging.GetLogger("config")

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Abbreviation file not loaded, continuing without abbreviations")
		return abbreviations
	}

	parsed, err := model.ParseContext(data)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Abbreviation file is malformed, continuing without abbreviations")
		return abbreviations
	}

	for k, v := range parsed {
		abbreviations[k] = v
	}
	logger.Debug().Str("path", path).Int("count", len(abbreviations)).Msg("Abbreviations loaded")
	return abbreviations
}

// StringAbbreviations returns the string-valued entries of abbreviations.
// Non-string values cannot serve as expansions and are skipped.
func StringAbbreviations(abbreviations map[string]model.Value) map[string]string {
	out := make(map[string]string, len(abbreviations))
	for k, v := range abbreviations {
		if s, ok := v.AsString(); ok {
			out[k] = s
		}
	}
	return out
}
