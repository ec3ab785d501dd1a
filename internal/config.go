// Package internal provides configuration management for pccopy.
//
// This module handles:
//   - The embedded default configuration
//   - Locating and loading the user's TOML config file
//   - Writing a fresh config file for `pccopy config init`
//
// The config holds share addressing and logging only. Form values and
// category selections are never persisted.
package internal

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"pccopy/internal/profile"
)

//go:embed config.example.toml
var exampleConf []byte

// ErrConfigExists is returned when `config init` would overwrite a file.
var ErrConfigExists = errors.New("config file already exists")

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Share ShareConfig `toml:"share"`
	Log   LogConfig   `toml:"log"`
}

// ShareConfig describes how computer names turn into share roots.
type ShareConfig struct {
	Name string `toml:"name"`
	Root string `toml:"root"`
}

// LogConfig contains log file settings.
type LogConfig struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

// Resolver builds the path resolver described by the share settings.
func (c *Config) Resolver() *profile.Resolver {
	return profile.NewResolver(c.Share.Root, c.Share.Name)
}

// DefaultConfig returns the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// LoadConfig reads a TOML file over the defaults, so missing keys keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}

// ResolveConfig applies the lookup order: an explicit path must load, the
// user config is used when present, otherwise the embedded defaults.
// The returned string names where the config came from.
func ResolveConfig(explicit string) (*Config, string, error) {
	if explicit != "" {
		config, err := LoadConfig(explicit)
		return config, explicit, err
	}

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			config, err := LoadConfig(path)
			return config, path, err
		}
	}
	return DefaultConfig(), "defaults", nil
}

// getConfigDir returns ~/.config/pccopy without creating it.
func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", AppID), nil
}

// ConfigPath returns the per-user config file location.
func ConfigPath() (string, error) {
	dir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// WriteDefaultConfig writes the embedded example config to path. An existing
// file is left alone unless force is set.
func WriteDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w at %s", ErrConfigExists, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write to file atomically (write to temp file, then rename)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, exampleConf, 0o644); err != nil {
		return fmt.Errorf("failed to write temp config file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename config file: %w", err)
	}
	return nil
}
