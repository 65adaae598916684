package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// PingCommand implements the `ping [message]` subcommand.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:      "ping",
		Usage:     "Ping the server",
		ArgsUsage: "[message]",
		Action: func(c *cli.Context) error {
			client, err := EnsureConnected(c)
			if err != nil {
				return err
			}
			defer client.Close()

			args := []string{"PING"}
			if c.NArg() > 0 {
				args = append(args, c.Args().Get(0))
			}

			reply, err := client.Do(args...)
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
