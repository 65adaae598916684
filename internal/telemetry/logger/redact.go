// Package logger provides structured logging for FerroDB.
package logger

import (
	"log/slog"
	"strings"
)

// Sensitive key patterns that should be redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"key",
	"credential",
	"auth",
	"bearer",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive checks if an attribute contains sensitive data
// and redacts it if necessary.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()

		// If key name suggests sensitive data and value is non-empty, fully redact
		keyLower := strings.ToLower(a.Key)
		for _, pattern := range sensitiveKeyPatterns {
			if strings.Contains(keyLower, pattern) {
				if strVal != "" {
					return slog.String(a.Key, redactedValue)
				}
				break
			}
		}
	}

	// Handle nested groups recursively
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// redactAttr returns a redacted version of the attribute.
func redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()
		if strVal != "" {
			return slog.String(a.Key, redactedValue)
		}
	}
	return a
}

// keyValueSplit splits a "key=value" style string (as appears in config
// dumps and DSNs) into its key and value. ok is false if value has no "=".
func keyValueSplit(value string) (key, val string, ok bool) {
	idx := strings.IndexByte(value, '=')
	if idx < 0 {
		return "", "", false
	}
	return value[:idx], value[idx+1:], true
}

// RedactString redacts the value half of a "key=value" string (e.g. a
// config dump line or DSN fragment) when the key looks sensitive. Strings
// with no "=" or a non-sensitive key pass through unchanged.
func RedactString(value string) string {
	key, val, ok := keyValueSplit(value)
	if !ok || val == "" || !IsSensitiveKey(key) {
		return value
	}
	return key + "=" + redactedValue
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

// IsSensitiveValue reports whether value is a "key=value" string whose key
// looks sensitive.
func IsSensitiveValue(value string) bool {
	key, val, ok := keyValueSplit(value)
	return ok && val != "" && IsSensitiveKey(key)
}
