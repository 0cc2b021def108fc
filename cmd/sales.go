package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtnworks/gt-client/internal/adapters/render/market"
)

func newSalesCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Inspect and settle your marketplace sales",
	}

	cmd.AddCommand(
		newSalesPendingCmd(app),
		newSalesClaimCmd(app),
	)

	return cmd
}

func newSalesPendingCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "Show sales awaiting settlement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := app.trade.PendingSales(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(raw))
			return err
		},
	}
}

func newSalesClaimCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "claim",
		Short: "Claim silver from settled sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.trade.ClaimSales(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), market.RenderClaim(result))
			return err
		},
	}
}
