package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/baasman/cakecutter/internal/logging"
)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
}

// FileLoader implements the Loader interface for file-based configuration loading.
// Sources are layered: built-in defaults, then the file, then CAKECUTTER_*
// environment variables. The YAML parser also accepts JSON files.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path.
func (l *FileLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}
	return l.load(path)
}

// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
// Environment overrides apply in both cases.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	cfg, err := l.Load(path)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) && cfgErr.Type == ConfigNotFound {
			logger := logging.GetLogger("config")
			logger.Debug().Str("path", path).Msg("Configuration file not found, using defaults")
			return l.load("")
		}
		return nil, err
	}
	return cfg, nil
}

func (l *FileLoader) load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to load defaults", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid configuration syntax", err)
		}
	}

	if err := k.Load(l.envProvider(), nil); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to load environment overrides", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid configuration structure", err)
	}
	if cfg.DefaultContext == nil {
		cfg.DefaultContext = map[string]string{}
	}
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}

	logger := logging.GetLogger("config")
	logger.Debug().
		Str("path", path).
		Int("default_context", len(cfg.DefaultContext)).
		Str("abbreviation_file", cfg.AbbreviationFile).
		Msg("Configuration loaded")

	return &cfg, nil
}

// envProvider maps CAKECUTTER_TEMPLATES__OUTPUT_DIR to templates.output_dir.
func (l *FileLoader) envProvider() *env.Env {
	return env.Provider(EnvPrefix, ".", func(key string) string {
		key = strings.TrimPrefix(key, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(key), "__", ".")
	})
}

// defaultValues flattens DefaultConfig for the confmap provider.
func defaultValues() map[string]interface{} {
	d := DefaultConfig()
	abbreviations := make(map[string]interface{}, len(d.Abbreviations))
	for k, v := range d.Abbreviations {
		abbreviations[k] = v
	}
	return map[string]interface{}{
		"default_context":                   map[string]interface{}{},
		"abbreviation_file":                 d.AbbreviationFile,
		"abbreviations":                     abbreviations,
		"templates.root_marker":             d.Templates.RootMarker,
		"templates.output_dir":              d.Templates.OutputDir,
		"templates.keep_project_on_failure": d.Templates.KeepProjectOnFailure,
		"output.color":                      d.Output.Color,
		"output.verbosity":                  d.Output.Verbosity,
	}
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() (string, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return string(data), nil
}
