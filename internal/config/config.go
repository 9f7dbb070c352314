// Package config provides configuration management for regen using Viper
// for flexible configuration loading from files, environment variables, and
// command-line flags.
//
// The configuration system supports YAML files and environment variable
// overrides with the REGEN_ prefix. It manages the site root, the sitemap
// manifest location, ignore patterns, registered template-engine
// extensions, and the content-hashing backend.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/regenkit/regen/internal/registry"
)

type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Templates TemplatesConfig `yaml:"templates"`
	Hash      HashConfig      `yaml:"hash"`
	Watch     WatchConfig     `yaml:"watch"`
}

type SiteConfig struct {
	// Root is the source tree to enumerate and watch.
	Root string `yaml:"root"`
	// Sitemap is the resource manifest path.
	Sitemap string `yaml:"sitemap"`
	// IgnorePatterns are doublestar globs pruned during enumeration.
	IgnorePatterns []string `yaml:"ignore_patterns"`
}

type TemplatesConfig struct {
	// Extensions lists the registered template-engine extensions.
	Extensions []string `yaml:"extensions"`
}

type HashConfig struct {
	// Backend selects the fingerprinting strategy: "local" or "delegated".
	Backend string `yaml:"backend"`
	// Command is the delegated hashing argv; the file path is appended.
	Command []string `yaml:"command"`
}

type WatchConfig struct {
	// DebounceMs groups rapid changes before resolution runs.
	DebounceMs int `yaml:"debounce_ms"`
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Handle slice values set via viper (workaround for viper slice handling)
	if viper.IsSet("site.ignore_patterns") && len(config.Site.IgnorePatterns) == 0 {
		config.Site.IgnorePatterns = viper.GetStringSlice("site.ignore_patterns")
	}
	if viper.IsSet("templates.extensions") && len(config.Templates.Extensions) == 0 {
		config.Templates.Extensions = viper.GetStringSlice("templates.extensions")
	}
	if viper.IsSet("hash.command") && len(config.Hash.Command) == 0 {
		config.Hash.Command = viper.GetStringSlice("hash.command")
	}

	// Handle debounce set via viper (workaround for viper key handling)
	if viper.IsSet("watch.debounce_ms") {
		config.Watch.DebounceMs = viper.GetInt("watch.debounce_ms")
	}

	// Apply default values for SiteConfig if not set
	if config.Site.Root == "" {
		config.Site.Root = "."
	}
	if config.Site.Sitemap == "" {
		config.Site.Sitemap = "sitemap.yml"
	}
	if len(config.Site.IgnorePatterns) == 0 {
		config.Site.IgnorePatterns = []string{"**/*.bak", "**/*.swp"}
	}

	// Apply default values for TemplatesConfig if not set
	if len(config.Templates.Extensions) == 0 {
		config.Templates.Extensions = registry.DefaultExtensions
	}

	// Apply default values for HashConfig if not set
	if config.Hash.Backend == "" {
		config.Hash.Backend = "local"
	}

	// Apply default values for WatchConfig if not set
	if config.Watch.DebounceMs <= 0 {
		config.Watch.DebounceMs = 300
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validatePath(config.Site.Root); err != nil {
		return fmt.Errorf("site root: %w", err)
	}
	if err := validatePath(config.Site.Sitemap); err != nil {
		return fmt.Errorf("sitemap: %w", err)
	}

	switch config.Hash.Backend {
	case "local", "delegated":
	default:
		return fmt.Errorf("hash backend must be local or delegated, got %q", config.Hash.Backend)
	}

	for _, ext := range config.Templates.Extensions {
		if strings.TrimPrefix(ext, ".") == "" {
			return fmt.Errorf("empty template extension")
		}
	}

	return nil
}

// validatePath validates a configured file path for security
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	// Reject path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	// Reject dangerous characters
	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
