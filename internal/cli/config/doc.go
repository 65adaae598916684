// Package config provides CLI configuration for ferrodb-cli.
//
// This package defines CLI-specific configuration:
//
//   - spec.go: CLIConfig struct (~/.ferrodb/cli.yaml)
//   - loader.go: configuration loading, saving, and env/flag merging
//
// Configuration includes:
//
//   - Default server address and output format
//   - Saved connection profiles
package config
