package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load builds the effective configuration with priority: defaults < file < flags.
//
// Returns:
//   - *Config: the layered configuration
//   - error: non-nil if an explicit or discovered config file failed to parse
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	return cfg, nil
}

// findConfigFile looks for a config file in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./quarry.yaml",
		filepath.Join(configDir(), "quarry.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "quarry")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "quarry")
}

// loadFromFile merges a YAML file over the current config values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
