package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for Pathwarden.
// Pointer fields distinguish "unset" from a zero value so the CLI can apply
// flag > local file > global file precedence.
type FileConfig struct {
	Include           *string       `yaml:"include"`
	Exclude           *string       `yaml:"exclude"`
	MaxFiles          *int          `yaml:"max_files"`
	MaxDepth          *int          `yaml:"max_depth"`
	MaxBytes          *int64        `yaml:"max_bytes"`
	NoColor           *bool         `yaml:"no_color"`
	SensitiveDirs     []string      `yaml:"sensitive_dirs"`
	SensitiveExts     []string      `yaml:"sensitive_exts"`
	SensitivePatterns []PatternRule `yaml:"sensitive_patterns"`
	ForbiddenRoots    []string      `yaml:"forbidden_roots"`
}

// PatternRule is a custom filename rule declared in a config file.
type PatternRule struct {
	Pattern     string `yaml:"pattern"`
	Description string `yaml:"description"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a project-local config file in the given root.
// It supports .pathwarden.yml/.yaml and pathwarden.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".pathwarden.yml", ".pathwarden.yaml", "pathwarden.yml", "pathwarden.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "pathwarden", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
