// Package config handles application configuration from an optional YAML
// file plus environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	DataDir       string `yaml:"data_dir"`
	Theme         string `yaml:"theme"`
	Notifications bool   `yaml:"notifications"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:       defaultDataDir(),
		Theme:         "nord",
		Notifications: true,
	}
}

// Load reads ~/.config/larder/config.yaml when present, falling back to
// defaults otherwise. LARDER_DATA_DIR overrides the data directory either
// way.
func Load() (*Config, error) {
	cfg, err := LoadFile(defaultConfigPath())
	if err != nil {
		return nil, err
	}
	if dir := os.Getenv("LARDER_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

// LoadFile reads configuration from a specific path. A missing file is not
// an error; defaults apply. Fields absent from the file keep their default
// values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, nil
}

// DBPath returns the database file path under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "larder.db")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".larder"
	}
	return filepath.Join(home, ".local", "share", "larder")
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".larder", "config.yaml")
	}
	return filepath.Join(home, ".config", "larder", "config.yaml")
}
