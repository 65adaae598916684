// Package main provides the entry point for ferrodb-cli.
//
// ferrodb-cli is the command-line client for FerroDB, supporting both
// single-command mode and an interactive REPL mode. It speaks RESP over
// the same TCP port as any other Redis client.
package main

import (
	"fmt"
	"os"

	"github.com/zuhaib786/FerroDB/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
