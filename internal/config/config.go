package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the optional user configuration. The zero value is the default
// behavior: no logging, stock key bindings.
type Config struct {
	LogFile string            `toml:"log_file"`
	Keys    map[string]string `toml:"keys"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{}
}

// Path reports the expected location of the configuration file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rless", "config.toml"), nil
}

// Load reads the user configuration. A missing file, or a system with no
// config directory at all, yields the defaults. A file that exists but
// cannot be read or parsed is an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LogPath resolves the debug log destination. The RLESS_LOG environment
// variable wins over the configured log_file; empty means logging is
// discarded.
func (c *Config) LogPath() string {
	if env := os.Getenv("RLESS_LOG"); env != "" {
		return env
	}
	return c.LogFile
}
