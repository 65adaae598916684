// Package config defines the CLI configuration structure.
package config

// CLIConfig is the configuration for ferrodb-cli.
type CLIConfig struct {
	// Default connection settings
	DefaultServer string `yaml:"default_server"`
	DefaultOutput string `yaml:"default_output"` // table, json, yaml

	// Saved connections, keyed by name.
	Connections map[string]ConnectionConfig `yaml:"connections"`

	// CurrentConnection is the name of the active saved connection, if any.
	CurrentConnection string `yaml:"current_connection"`
}

// ConnectionConfig stores a saved connection's server address.
type ConnectionConfig struct {
	Server string `yaml:"server"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultServer: "127.0.0.1:6379",
		DefaultOutput: "table",
		Connections:   make(map[string]ConnectionConfig),
	}
}
