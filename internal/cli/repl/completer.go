// Package repl provides the interactive REPL mode for ferrodb-cli.
package repl

import "strings"

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"GET", "SET", "MGET", "MSET", "DEL", "EXISTS",
			"EXPIRE", "EXPIREAT", "PERSIST", "TTL",
			"LPUSH", "RPUSH", "LPOP", "RPOP", "LRANGE", "LLEN",
			"SADD", "SREM", "SMEMBERS", "SCARD", "SISMEMBER", "SINTER", "SUNION", "SDIFF",
			"ZADD", "ZREM", "ZSCORE", "ZRANGE", "ZRANK", "ZCARD",
			"SUBSCRIBE", "UNSUBSCRIBE", "PUBLISH",
			"PING", "DBSIZE", "FLUSHALL", "SAVE", "BGSAVE", "BGREWRITEAOF",
			"help", "exit", "quit",
		},
	}
}

// Complete returns completion suggestions for the given prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
