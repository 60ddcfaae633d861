package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default project configuration file name.
const DefaultConfigFile = ".descheck"

// File represents the structure of the .descheck configuration file.
// Every field is optional; unset fields keep their built-in defaults.
type File struct {
	// Root is the project root to scan, relative to the file's directory
	// when not absolute.
	Root string `yaml:"root,omitempty"`

	// Layout is the layout template path.
	Layout string `yaml:"layout,omitempty"`

	// Extensions are the file extensions treated as pages.
	Extensions []string `yaml:"extensions,omitempty"`

	// IgnorePatterns are glob patterns for directories and files to skip.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// EntriesMarker is the variable name delimiting the description table,
	// for forks of the layout convention that renamed it.
	EntriesMarker string `yaml:"entriesMarker,omitempty"`

	// SlugProperties is the priority-ordered slug property list.
	SlugProperties []string `yaml:"slugProperties,omitempty"`

	// DescriptionProperty is the inline-description property name.
	DescriptionProperty string `yaml:"descriptionProperty,omitempty"`
}

// LoadConfigFile loads a project configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers decide
// whether that matters based on whether the path was explicitly specified.
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
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cf, nil
}

// Apply overlays file values onto the config. Only set fields override;
// flags applied afterwards take precedence over both.
func (c *Config) Apply(cf *File) {
	if cf == nil {
		return
	}
	if cf.Root != "" {
		c.Root = cf.Root
	}
	if cf.Layout != "" {
		c.LayoutPath = cf.Layout
	}
	if len(cf.Extensions) > 0 {
		c.Extensions = cf.Extensions
	}
	if len(cf.IgnorePatterns) > 0 {
		c.IgnorePatterns = cf.IgnorePatterns
	}
	if cf.EntriesMarker != "" {
		c.EntriesMarker = cf.EntriesMarker
	}
	if len(cf.SlugProperties) > 0 {
		c.SlugProperties = cf.SlugProperties
	}
	if cf.DescriptionProperty != "" {
		c.DescriptionProperty = cf.DescriptionProperty
	}
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .descheck in the project root
//  3. Look for .descheck in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath, root string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if root != "" {
		rootConfig := filepath.Join(root, DefaultConfigFile)
		if _, err := os.Stat(rootConfig); err == nil {
			return rootConfig
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
