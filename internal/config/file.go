package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var cacheBackends = map[string]bool{
	"none":   true,
	"sqlite": true,
	"redis":  true,
}

// ApplyFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current values.
func (cfg *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

func (cfg Config) Validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range", cfg.Port)
	}
	if cfg.MaxImageBytes <= 0 {
		return fmt.Errorf("maxImageBytes must be positive, got %d", cfg.MaxImageBytes)
	}
	if !cacheBackends[strings.ToLower(cfg.CacheBackend)] {
		return fmt.Errorf("unsupported cache backend: %s", cfg.CacheBackend)
	}
	return nil
}
