package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mtnworks/gt-client/pkg/logger"
)

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear cached credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// Server-side logout is best effort; local credentials are
			// cleared regardless of whether the server acknowledges it.
			if _, valid := app.session.CurrentToken(); valid {
				if _, err := app.client.Do(ctx, http.MethodPost, "/auth/logout", nil); err != nil {
					logger.Warnf("server logout failed: %v", err)
				}
			}

			app.session.Cleanup(ctx)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out; cached credentials cleared.")
			return err
		},
	}
}
