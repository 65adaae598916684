// Package command provides CLI command definitions for FerroDB.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: root command, global flags, connection setup
//   - get.go: GET subcommand
//   - set.go: SET subcommand
//   - ping.go: PING subcommand
//   - subscribe.go: SUBSCRIBE subcommand (monitor-like, streams published messages)
//   - repl.go: interactive REPL entry point
//   - info.go: INFO summary, rendered through output.Formatter (table/json/yaml)
//
// Commands follow a consistent pattern: parse flags, open a RESP
// connection via connection.RESPClient, send one command, and format
// the reply for output.
package command
