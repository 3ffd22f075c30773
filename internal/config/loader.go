package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalPath is the project-local config file consulted by Load.
const LocalPath = "configs/cubefield.yaml"

// Load overlays a YAML config file on top of base.
// Search order: path -> ~/.cubefield/config.yaml -> ./configs/cubefield.yaml -> base
func Load(path string, base Config) (Config, error) {
	// Try custom path first
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return base, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		cfg, err := overlay(data, base)
		if err != nil {
			return base, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userPath := userConfigPath(); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if cfg, err := overlay(data, base); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(LocalPath); err == nil {
		if cfg, err := overlay(data, base); err == nil {
			return cfg, nil
		}
	}

	return base, nil
}

// overlay decodes data into a copy of base so absent keys keep base values.
func overlay(data []byte, base Config) (Config, error) {
	cfg := base
	cfg.Display.Dimensions = cloneDims(base.Display.Dimensions)
	cfg.Display.MinDimensions = cloneDims(base.Display.MinDimensions)
	cfg.Display.MaxDimensions = cloneDims(base.Display.MaxDimensions)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

func cloneDims(d *Dimensions) *Dimensions {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// userConfigPath returns the per-user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cubefield", "config.yaml")
}
