package app

import (
	"github.com/baasman/cakecutter/internal/config"
	"github.com/baasman/cakecutter/internal/logging"
)

// LoadConfig loads the user configuration. An explicit path must exist;
// otherwise the default location is used and a missing file yields defaults.
// The returned string is the path that was consulted.
func LoadConfig(explicitPath string) (*config.Config, string, error) {
	logger := logging.GetLogger("app")
	loader := config.NewLoader()

	if explicitPath != "" {
		cfg, err := loader.Load(explicitPath)
		return cfg, explicitPath, err
	}

	path := config.DefaultConfigPath()
	logger.Debug().Str("path", path).Msg("Using default configuration path")
	cfg, err := loader.LoadOrDefault(path)
	return cfg, path, err
}
