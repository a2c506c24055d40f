// Package config loads the tool configuration from YAML, layered over
// built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"meshlint/pkg/checker"
)

// Config is the full tool configuration.
type Config struct {
	Logging  Logging  `yaml:"logging"`
	Checkers Checkers `yaml:"checkers"`
}

// Logging controls log output.
type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Checkers selects and tunes the validation rules.
type Checkers struct {
	checker.Config `yaml:",inline"`

	// Disabled lists checker names to skip, e.g. "naming".
	Disabled []string `yaml:"disabled"`

	// RuleScripts lists lisp rule files run as extra checkers.
	RuleScripts []string `yaml:"rule_scripts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging:  Logging{Level: "info"},
		Checkers: Checkers{Config: checker.DefaultConfig()},
	}
}

// Load reads path and merges it over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Enabled reports whether the named checker should run.
func (c *Checkers) Enabled(name string) bool {
	for _, d := range c.Disabled {
		if d == name {
			return false
		}
	}
	return true
}
