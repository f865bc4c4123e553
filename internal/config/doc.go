// Package config loads Pathwarden configuration from local and global YAML
// files with precedence rules. It is internal; CLI code maps flags and files
// into scanner configuration.
package config
