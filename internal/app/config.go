package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete client configuration, loadable from environment
// variables (BLOSSOM_ prefix) or YAML config files.
type Config struct {
	APIURL      string        `default:"http://localhost:5000" usage:"Storefront API base URL" flag:"api-url"`
	StatePath   string        `usage:"Path to the local state database (defaults to the user config dir)" flag:"state-path"`
	HTTPTimeout time.Duration `default:"30s" usage:"HTTP request timeout" flag:"http-timeout"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files. Command-line flags are handled by the CLI layer, not here.
func LoadConfig() (*Config, error) {
	var cfg Config

	files := []string{"config.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, "blossom", "config.yaml"))
	}

	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "BLOSSOM",
		SkipFlags: true,
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if cfg.StatePath == "" {
		path, err := defaultStatePath()
		if err != nil {
			return nil, err
		}
		cfg.StatePath = path
	}

	return &cfg, nil
}

// defaultStatePath places the state database under the platform user config
// directory.
func defaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user config dir")
	}
	return filepath.Join(dir, "blossom", "state.db"), nil
}
