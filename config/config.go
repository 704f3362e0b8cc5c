// Package config loads harness configuration from defaults, an optional YAML
// file, and APITEST_-prefixed environment variables, in increasing priority.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variables the loader reads. Double
// underscores separate key segments so snake_case keys survive, e.g.
// APITEST_TARGETS__PRIMARY__BASE_URL maps to targets.primary.base_url.
const envPrefix = "APITEST_"

// Load builds the configuration from defaults, the YAML file at path (when
// path is non-empty the file must exist), and environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := k.Load(envprovider.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return unmarshal(k)
}

// LoadBytes builds the configuration from defaults overlaid with in-memory
// YAML. Tests use this to avoid touching the filesystem.
func LoadBytes(data []byte) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config bytes: %w", err)
	}

	return unmarshal(k)
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"targets.primary.base_url":   "https://jsonplaceholder.typicode.com",
		"targets.secondary.base_url": "https://reqres.in/api",

		"http.timeout": "10s",
		"http.headers": map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},

		"thresholds.fast":   "500ms",
		"thresholds.medium": "1500ms",
		"thresholds.slow":   "3s",

		"log.level":  "info",
		"log.pretty": false,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Targets.Primary.BaseURL == "" {
		return fmt.Errorf("targets.primary.base_url is required")
	}
	if cfg.Targets.Secondary.BaseURL == "" {
		return fmt.Errorf("targets.secondary.base_url is required")
	}
	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive")
	}
	if cfg.Thresholds.Fast <= 0 || cfg.Thresholds.Medium <= 0 || cfg.Thresholds.Slow <= 0 {
		return fmt.Errorf("thresholds must be positive")
	}
	return nil
}
