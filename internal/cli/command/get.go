package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// GetCommand implements the `get <key>` subcommand.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get the value of a key",
		ArgsUsage: "<key>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("get requires exactly one key argument")
			}

			client, err := EnsureConnected(c)
			if err != nil {
				return err
			}
			defer client.Close()

			reply, err := client.Do("GET", c.Args().Get(0))
			if err != nil {
				return err
			}
			if rerr := replyErr(reply); rerr != nil {
				fmt.Fprintf(c.App.ErrWriter, "error: %v\n", rerr)
				return nil
			}

			fmt.Fprintln(c.App.Writer, formatReply(reply))
			return nil
		},
	}
}
