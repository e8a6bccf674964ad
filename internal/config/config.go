// Package config holds the container and component-directory configuration.
// It is loaded from components.yml in the project root.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/DeusData/component-dirs/internal/inflector"
)

// FileName is the config file looked up by LoadDir.
const FileName = "components.yml"

const (
	DefaultSeparator = "."
	DefaultExtension = ".rb"
	DefaultLoader    = "require"
)

// ContainerConfig is the container-level configuration shared by every
// component directory.
type ContainerConfig struct {
	// Root is the directory component dirs are relative to.
	Root string `yaml:"root"`
	// Separator joins key segments ("." gives "admin.users").
	Separator string `yaml:"separator"`
	// Extension is the source file extension, including the dot.
	Extension string `yaml:"extension"`
	// Acronyms are passed to the inflector.
	Acronyms []string `yaml:"acronyms"`

	ComponentDirs []DirectoryConfig `yaml:"component_dirs"`
}

// DirectoryConfig configures one component directory.
type DirectoryConfig struct {
	// Path is relative to the container root.
	Path string `yaml:"path"`

	// AutoRegister defaults to true.
	AutoRegister *bool `yaml:"auto_register"`
	// Memoize defaults to false.
	Memoize *bool `yaml:"memoize"`
	// Loader names the loader used to instantiate components.
	Loader string `yaml:"loader"`

	Namespaces Namespaces `yaml:"namespaces"`
}

// DefaultConfig returns a container config with default settings and no
// component directories.
func DefaultConfig() *ContainerConfig {
	return &ContainerConfig{
		Root:      ".",
		Separator: DefaultSeparator,
		Extension: DefaultExtension,
	}
}

// Load reads a config file. A relative root is resolved against the
// file's directory.
func Load(path string) (*ContainerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir reads components.yml from dir. Returns the default config rooted
// at dir if the file doesn't exist.
func LoadDir(dir string) (*ContainerConfig, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		cfg.Root = dir
		return cfg, nil
	}
	return cfg, err
}

// Validate checks settings that would make key/path translation ambiguous.
func (c *ContainerConfig) Validate() error {
	if c.Separator == "" {
		return errors.New("separator must not be empty")
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	seen := make(map[string]bool, len(c.ComponentDirs))
	for _, d := range c.ComponentDirs {
		clean := filepath.Clean(d.Path)
		if seen[clean] {
			return fmt.Errorf("component dir %q configured twice", d.Path)
		}
		seen[clean] = true
	}
	return nil
}

// Inflector returns the inflector configured for this container.
func (c *ContainerConfig) Inflector() inflector.Inflector {
	return inflector.Default(inflector.WithAcronyms(c.Acronyms...))
}

// Dir returns the component directory configured for path.
func (c *ContainerConfig) Dir(path string) (DirectoryConfig, bool) {
	for _, d := range c.ComponentDirs {
		if filepath.Clean(d.Path) == filepath.Clean(path) {
			return d, true
		}
	}
	return DirectoryConfig{}, false
}

// EffectiveAutoRegister returns the configured auto-register flag, or true
// if not set.
func (d DirectoryConfig) EffectiveAutoRegister() bool {
	if d.AutoRegister != nil {
		return *d.AutoRegister
	}
	return true
}

// EffectiveMemoize returns the configured memoize flag, or false if not set.
func (d DirectoryConfig) EffectiveMemoize() bool {
	if d.Memoize != nil {
		return *d.Memoize
	}
	return false
}

// EffectiveLoader returns the configured loader, or "require" if not set.
func (d DirectoryConfig) EffectiveLoader() string {
	if d.Loader != "" {
		return d.Loader
	}
	return DefaultLoader
}
