// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for ferrodb-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures the RESP listener.
type ServerSection struct {
	// Bind is the interface address to listen on, e.g. "127.0.0.1".
	Bind string `koanf:"bind"`
	// Port is the TCP port to listen on.
	Port int `koanf:"port"`
	// ReadTimeout bounds how long a connection may take to send one command.
	ReadTimeout time.Duration `koanf:"read_timeout"`
	// WriteTimeout bounds how long a reply may take to flush.
	WriteTimeout time.Duration `koanf:"write_timeout"`
	// IdleTimeout bounds how long a connection may sit idle with no command
	// in flight before it is closed.
	IdleTimeout time.Duration `koanf:"idle_timeout"`
}

// StorageSection configures persistence: the append-only file and periodic
// snapshots.
type StorageSection struct {
	// DataDir is where the AOF and snapshot files are written.
	DataDir string `koanf:"data_dir"`
	// AppendOnly enables append-only-file logging of write commands.
	AppendOnly bool `koanf:"appendonly"`
	// SaveRules are snapshot schedule entries in "<seconds>:<changes>" form,
	// e.g. "900:1" (snapshot every 900s if at least 1 key changed).
	SaveRules []string `koanf:"save"`
	// SnapshotKeep is how many rotated snapshot files to retain.
	SnapshotKeep int `koanf:"snapshot_keep"`
}

// LogSection configures structured logging.
type LogSection struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is "json" or "text".
	Format string `koanf:"format"`
}
