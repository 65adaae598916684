// Package main provides the entry point for ferrodb-cli.
//
// ferrodb-cli gives command-line access to a FerroDB server:
//
//   - get/set: single-key reads and writes
//   - ping: liveness check
//   - subscribe: stream published messages from one or more channels
//   - repl: an interactive read-eval-print loop over the same connection
//
// Usage:
//
//	ferrodb-cli --server 127.0.0.1:6379 get foo
//	ferrodb-cli --server 127.0.0.1:6379 set foo bar --ex 60
//	ferrodb-cli --server 127.0.0.1:6379 subscribe news
//	ferrodb-cli --server 127.0.0.1:6379 repl
package main
