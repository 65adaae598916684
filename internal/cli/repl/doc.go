// Package repl provides interactive mode for the FerroDB CLI.
//
// This package implements the Read-Eval-Print Loop for interactive sessions:
//
//   - repl.go: Main REPL loop and command dispatch
//   - completer.go: Prefix completion of command names
//   - history.go: In-memory command history with Load/Save to a file
//
// Run records each line in the in-memory history. It does not call the
// completer, and it does not load or save the history file.
package repl
