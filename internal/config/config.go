// Package config loads velac's optional configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the configuration file velac looks for in the working
// directory when no --config flag is given.
const DefaultFile = "velac.toml"

// Config holds the velac driver configuration.
// Command-line flags override file values.
type Config struct {
	// MaxErrors caps the number of diagnostics printed per run.
	// Zero means no cap. Analysis itself never aborts.
	MaxErrors int `toml:"max_errors"`

	// Color enables styled diagnostic output.
	Color bool `toml:"color"`

	// Trace enables parser/analyzer phase timing output.
	Trace bool `toml:"trace"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxErrors: 20,
		Color:     true,
	}
}

// Load reads the configuration from path. A missing file is not an
// error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}
	if cfg.MaxErrors < 0 {
		return cfg, fmt.Errorf("loading config %s: max_errors must not be negative", path)
	}
	return cfg, nil
}
