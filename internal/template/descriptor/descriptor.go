// Package descriptor builds the in-memory description of a template from
// its configuration file.
package descriptor

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/baasman/cakecutter/internal/config"
	"github.com/baasman/cakecutter/internal/logging"
	"github.com/baasman/cakecutter/internal/template/model"
)

// Resolve reads <root>/cakecutter.json and builds the template descriptor.
// Template-declared values win over defaults. The original context is
// captured here, once. Abbreviations are loaded when abbreviationPath is
// non-empty; a bad abbreviation file is not an error.
func Resolve(fs afero.Fs, root string, defaults map[string]string, abbreviationPath string) (*model.Template, error) {
	return ResolveWithAbbreviations(fs, root, defaults, config.LoadAbbreviations(fs, abbreviationPath))
}

// ResolveWithAbbreviations is Resolve for callers that already loaded the
// abbreviation table. The table is copied into the template.
func ResolveWithAbbreviations(fs afero.Fs, root string, defaults map[string]string, abbreviations map[string]model.Value) (*model.Template, error) {
	logger := logging.GetLogger("descriptor")
	configPath := filepath.Join(root, model.ConfigFileName)

	data, err := afero.ReadFile(fs, configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newSourceConfigError(SourceConfigNotFound, configPath, "template has no configuration file", err)
		}
		return nil, newSourceConfigError(SourceConfigUnreadable, configPath, "failed to read template configuration", err)
	}

	declared, err := parseDeclared(configPath, data)
	if err != nil {
		return nil, err
	}

	ctx := model.Merge(defaults, declared)

	tmpl := &model.Template{
		Root:            root,
		Context:         ctx,
		OriginalContext: model.SnapshotOriginal(ctx),
		Abbreviations:   copyAbbreviations(abbreviations),
	}

	logger.Debug().
		Str("root", root).
		Int("declared", len(declared)).
		Int("defaults", len(defaults)).
		Int("context", len(ctx)).
		Msg("Template resolved")

	return tmpl, nil
}

func copyAbbreviations(src map[string]model.Value) map[string]model.Value {
	dst := make(map[string]model.Value, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func parseDeclared(configPath string, data []byte) (model.Context, error) {
	var v model.Value
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, newSourceConfigError(SourceConfigMalformed, configPath, "template configuration is not valid JSON", err)
	}
	fields, ok := v.AsObject()
	if !ok {
		return nil, newSourceConfigError(SourceConfigNotAnObject, configPath, "template configuration must be a JSON object, got "+v.Kind().String(), nil)
	}
	return model.Context(fields), nil
}
