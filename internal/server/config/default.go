// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultBind = "127.0.0.1"
	DefaultPort = 6379

	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 5 * time.Minute

	DefaultDataDir      = "./data"
	DefaultAppendOnly   = false
	DefaultSnapshotKeep = 3

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// DefaultSaveRules is the snapshot schedule applied when no --save flags are
// given: snapshot every 60s when at least 1 key changed since the last one.
var DefaultSaveRules = []string{"60:1"}

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Bind:         DefaultBind,
			Port:         DefaultPort,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			IdleTimeout:  DefaultIdleTimeout,
		},
		Storage: StorageSection{
			DataDir:      DefaultDataDir,
			AppendOnly:   DefaultAppendOnly,
			SaveRules:    append([]string(nil), DefaultSaveRules...),
			SnapshotKeep: DefaultSnapshotKeep,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
