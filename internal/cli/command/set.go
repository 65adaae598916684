package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// SetCommand implements the `set <key> <value>` subcommand.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set the value of a key",
		ArgsUsage: "<key> <value>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "ex",
				Usage: "Expire after this many seconds",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("set requires exactly two arguments: <key> <value>")
			}

			client, err := EnsureConnected(c)
			if err != nil {
				return err
			}
			defer client.Close()

			args := []string{"SET", c.Args().Get(0), c.Args().Get(1)}
			if c.IsSet("ex") {
				args = append(args, "EX", fmt.Sprintf("%d", c.Int("ex")))
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
