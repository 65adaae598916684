package command

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
)

// SubscribeCommand implements the `subscribe <channel> [channel...]`
// subcommand. It blocks, printing each published message as it arrives,
// until interrupted.
func SubscribeCommand() *cli.Command {
	return &cli.Command{
		Name:      "subscribe",
		Usage:     "Subscribe to one or more channels and print published messages",
		ArgsUsage: "<channel> [channel...]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("subscribe requires at least one channel")
			}

			client, err := EnsureConnected(c)
			if err != nil {
				return err
			}
			defer client.Close()

			channels := c.Args().Slice()
			args := append([]string{"SUBSCRIBE"}, channels...)
			reply, err := client.Do(args...)
			if err != nil {
				return err
			}
			if rerr := replyErr(reply); rerr != nil {
				fmt.Fprintf(c.App.ErrWriter, "error: %v\n", rerr)
				return nil
			}
			fmt.Fprintln(c.App.Writer, formatReply(reply))

			// The server sends one subscribe confirmation per channel.
			for i := 1; i < len(channels); i++ {
				confirm, err := client.ReadReply()
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, formatReply(confirm))
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)
			done := make(chan struct{})

			go func() {
				defer close(done)
				for {
					msg, err := client.ReadReply()
					if err != nil {
						return
					}
					fmt.Fprintln(c.App.Writer, formatReply(msg))
				}
			}()

			select {
			case <-sigCh:
			case <-done:
			}
			return nil
		},
	}
}
