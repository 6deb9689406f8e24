package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".scriptmap"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// RuleEntry is a custom classification rule as written in the config
// file. Kind is one of "host", "suffix", or "keyword"; unknown kinds
// degrade to keyword matching. Category names follow the report
// taxonomy (analytics, ads, cdn/library, payment, social, monitoring,
// maps, generic).
type RuleEntry struct {
	// Pattern is the host, host suffix, or keyword to match.
	Pattern string `yaml:"pattern"`

	// Kind selects the matching strategy: host, suffix, or keyword.
	Kind string `yaml:"kind"`

	// Category is the category name assigned on match.
	Category string `yaml:"category"`
}

// File represents the structure of the .scriptmap configuration file.
type File struct {
	// PrimaryDomain is a default primary domain, used when the
	// --primary-domain flag is not given.
	PrimaryDomain string `yaml:"primaryDomain,omitempty"`

	// Rules are custom classification rules evaluated before the
	// built-in table within each pattern kind.
	Rules []RuleEntry `yaml:"rules,omitempty"`

	// IgnorePatterns are URL substrings to skip during extraction.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// OutputPrefix overrides the default report file prefix.
	OutputPrefix string `yaml:"outputPrefix,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// should handle this error appropriately based on whether the config
// file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .scriptmap in the current directory
// 3. Look for .scriptmap in the user's home directory
//
// Returns the path to the configuration file if found, or empty string
// if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply merges file settings into the config. Values already set on the
// config (from CLI flags) take precedence over file values.
func (cf *File) Apply(cfg *Config) {
	if cfg.PrimaryDomain == "" {
		cfg.PrimaryDomain = cf.PrimaryDomain
	}
	if cf.OutputPrefix != "" && cfg.OutputPrefix == DefaultOutputPrefix {
		cfg.OutputPrefix = cf.OutputPrefix
	}
	cfg.Rules = append(cfg.Rules, cf.Rules...)
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, cf.IgnorePatterns...)
}
