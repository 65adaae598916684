// Package main provides the entry point for ferrodb-server.
//
// The server is the core FerroDB service. It provides:
//
//   - A RESP-compatible TCP listener for string, list, set, sorted-set,
//     key-expiry, and pub/sub commands
//   - An append-only file and periodic binary snapshots for durability
//   - A Prometheus metrics endpoint
//
// Usage:
//
//	ferrodb-server --bind 127.0.0.1 --port 6379 --dir ./data --appendonly yes --save 900:1
//	ferrodb-server --config /path/to/config.yaml
//
// Flags always win over FERRODB_-prefixed environment variables, which in
// turn win over an optional --config file, which wins over defaults.
package main
