package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/baasman/cakecutter/internal/template/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.AbbreviationFile != ".abv.json" {
		t.Errorf("Expected AbbreviationFile=.abv.json, got %s", cfg.AbbreviationFile)
	}
	if cfg.Templates.RootMarker != "cakecutter" {
		t.Errorf("Expected RootMarker=cakecutter, got %s", cfg.Templates.RootMarker)
	}
	if cfg.Templates.OutputDir != "." {
		t.Errorf("Expected OutputDir=., got %s", cfg.Templates.OutputDir)
	}
	if cfg.Templates.KeepProjectOnFailure {
		t.Error("KeepProjectOnFailure should be false by default")
	}
	if !cfg.Output.Color {
		t.Error("Color output should be enabled by default")
	}
	for _, name := range []string{"gh", "gl", "bb"} {
		if _, ok := cfg.Abbreviations[name]; !ok {
			t.Errorf("Expected builtin abbreviation %q", name)
		}
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.json")
	if got := DefaultConfigPath(); got != "/tmp/custom.json" {
		t.Errorf("Expected env path, got %s", got)
	}

	t.Setenv(EnvConfigPath, "")
	if got := DefaultConfigPath(); !strings.HasSuffix(got, filepath.Join("cakecutter", "config.json")) {
		t.Errorf("Expected xdg path ending in cakecutter/config.json, got %s", got)
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"default_context": {"Author": "Jane", "license": "MIT"},
		"abbreviation_file": "/etc/abv.json",
		"abbreviations": {"corp": "https://git.corp/{0}.git"},
		"templates": {"output_dir": "out", "keep_project_on_failure": true}
	}`)

	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Keys must keep their case.
	if cfg.DefaultContext["Author"] != "Jane" {
		t.Errorf("Expected DefaultContext[Author]=Jane, got %v", cfg.DefaultContext)
	}
	if cfg.DefaultContext["license"] != "MIT" {
		t.Errorf("Expected DefaultContext[license]=MIT, got %v", cfg.DefaultContext)
	}
	if cfg.AbbreviationFile != "/etc/abv.json" {
		t.Errorf("Expected AbbreviationFile=/etc/abv.json, got %s", cfg.AbbreviationFile)
	}
	if cfg.Abbreviations["corp"] != "https://git.corp/{0}.git" {
		t.Errorf("Expected corp abbreviation, got %v", cfg.Abbreviations)
	}
	if cfg.Abbreviations["gh"] == "" {
		t.Error("Builtin abbreviations should survive a file that adds its own")
	}
	if cfg.Templates.OutputDir != "out" {
		t.Errorf("Expected OutputDir=out, got %s", cfg.Templates.OutputDir)
	}
	if !cfg.Templates.KeepProjectOnFailure {
		t.Error("Expected KeepProjectOnFailure=true")
	}
	// Unset values keep their defaults.
	if cfg.Templates.RootMarker != "cakecutter" {
		t.Errorf("Expected default RootMarker, got %s", cfg.Templates.RootMarker)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", "default_context:\n  project_name: demo\noutput:\n  verbosity: 2\n")

	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultContext["project_name"] != "demo" {
		t.Errorf("Expected project_name=demo, got %v", cfg.DefaultContext)
	}
	if cfg.Output.Verbosity != 2 {
		t.Errorf("Expected Verbosity=2, got %d", cfg.Output.Verbosity)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "config.json", `{"templates": {"output_dir": "from-file"}}`)
	t.Setenv("CAKECUTTER_TEMPLATES__OUTPUT_DIR", "from-env")
	t.Setenv("CAKECUTTER_ABBREVIATION_FILE", "env-abv.json")

	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Templates.OutputDir != "from-env" {
		t.Errorf("Expected env to win over file, got %s", cfg.Templates.OutputDir)
	}
	if cfg.AbbreviationFile != "env-abv.json" {
		t.Errorf("Expected AbbreviationFile=env-abv.json, got %s", cfg.AbbreviationFile)
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected *ConfigError, got %T", err)
	}
	if cfgErr.Type != ConfigNotFound {
		t.Errorf("Expected ConfigNotFound, got %v", cfgErr.Type)
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := NewLoader().LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.AbbreviationFile != DefaultAbbreviationFile {
		t.Errorf("Expected default AbbreviationFile, got %s", cfg.AbbreviationFile)
	}
	if cfg.DefaultContext == nil {
		t.Error("DefaultContext should be an empty map, not nil")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errType ConfigErrorType
	}{
		{"malformed syntax", `{"default_context": `, ConfigInvalid},
		{"empty root marker", `{"templates": {"root_marker": ""}}`, ConfigValidationFailed},
		{"negative verbosity", `{"output": {"verbosity": -1}}`, ConfigValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "config.json", tt.content)

			_, err := NewLoader().LoadOrDefault(path)
			if err == nil {
				t.Fatal("Expected error")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected *ConfigError, got %T", err)
			}
			if cfgErr.Type != tt.errType {
				t.Errorf("Expected %v, got %v", tt.errType, cfgErr.Type)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(""); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}

	cfg.Templates.RootMarker = "a/b"
	if err := cfg.Validate(""); err == nil {
		t.Error("Expected error for root marker with separator")
	}

	cfg = DefaultConfig()
	cfg.Abbreviations["bad:name"] = "x"
	if err := cfg.Validate(""); err == nil {
		t.Error("Expected error for abbreviation name containing a colon")
	}
}

func TestConfigYAML(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultContext["project_name"] = "demo"

	out, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML failed: %v", err)
	}
	for _, want := range []string{"default_context:", "project_name: demo", "root_marker: cakecutter", "abbreviation_file: .abv.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected YAML to contain %q, got:\n%s", want, out)
		}
	}
}

func TestLoadAbbreviations(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/abv.json", []byte(`{"gh": "https://github.com/{0}.git", "n": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/broken.json", []byte(`{"gh": `), 0644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/array.json", []byte(`["gh"]`), 0644); err != nil {
		t.Fatal(err)
	}

	abv := LoadAbbreviations(fs, "/abv.json")
	if len(abv) != 2 {
		t.Fatalf("Expected 2 abbreviations, got %d", len(abv))
	}
	if s, _ := abv["gh"].AsString(); s != "https://github.com/{0}.git" {
		t.Errorf("Unexpected gh expansion: %v", abv["gh"])
	}
	if !abv["n"].Equal(model.Number(1)) {
		t.Errorf("Expected numeric value to be kept, got %v", abv["n"])
	}

	strs := StringAbbreviations(abv)
	if len(strs) != 1 || strs["gh"] == "" {
		t.Errorf("Expected only the string entry, got %v", strs)
	}

	for _, path := range []string{"", "/missing.json", "/broken.json", "/array.json"} {
		got := LoadAbbreviations(fs, path)
		if got == nil || len(got) != 0 {
			t.Errorf("LoadAbbreviations(%q): expected empty map, got %v", path, got)
		}
	}
}
