package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/zuhaib786/FerroDB/internal/cli/output"
	"github.com/zuhaib786/FerroDB/internal/cli/repl"
)

// ReplCommand implements the interactive REPL mode.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Start an interactive REPL connected to the server",
		Action: func(c *cli.Context) error {
			client, err := EnsureConnected(c)
			if err != nil {
				return err
			}
			defer client.Close()

			spinner := output.NewSpinner(c.App.Writer, fmt.Sprintf("connecting to %s", ParseGlobalFlags(c).Server))
			spinner.Start()
			dialErr := client.Connect()
			if dialErr != nil {
				spinner.Fail(dialErr.Error())
				return dialErr
			}
			spinner.Success(fmt.Sprintf("connected to %s", ParseGlobalFlags(c).Server))

			exec := func(args []string) (string, error) {
				reply, err := client.Do(args...)
				if err != nil {
					return "", err
				}
				if rerr := replyErr(reply); rerr != nil {
					return "", rerr
				}
				return formatReply(reply), nil
			}

			return repl.New(exec).Run()
		},
	}
}
