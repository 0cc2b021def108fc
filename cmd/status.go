package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session and configuration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "server: %s\n", app.config.ServerURL)
			fmt.Fprintf(out, "player: %s\n", app.config.PlayerName)

			if token, valid := app.session.CurrentToken(); valid {
				fmt.Fprintf(out, "session: valid until %s\n", token.ExpiresAt.Format(time.RFC1123))
				return nil
			}

			fmt.Fprintln(out, "session: no valid token, run `gt login`")
			return nil
		},
	}
}
