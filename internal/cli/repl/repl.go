// Package repl provides the interactive REPL mode for ferrodb-cli.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Executor runs a parsed command line against a server connection and
// returns the text to print.
type Executor func(args []string) (string, error)

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	completer *Completer
	history   *History
	exec      Executor
}

// New creates a new REPL instance. exec is called for each non-empty line;
// a nil exec makes the REPL print "not connected" instead of dispatching.
func New(exec Executor) *REPL {
	return &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		completer: NewCompleter(),
		history:   NewHistory(),
		exec:      exec,
	}
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, "ferrodb> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		if err := r.execute(line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

func (r *REPL) execute(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	if r.exec == nil {
		fmt.Fprintln(r.output, "not connected")
		return nil
	}
	out, err := r.exec(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.output, out)
	return nil
}
