// Package config defines the server configuration structure.
package config

// Sanitize returns a copy of the config safe to log. FerroDB's
// configuration carries no secrets (authentication is a non-goal), so this
// is presently a shallow copy; it exists as the single seam callers log
// through, so a future sensitive field doesn't get logged by accident.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	sanitized := *cfg
	return &sanitized
}
