package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtnworks/gt-client/internal/adapters/render/market"
	"github.com/mtnworks/gt-client/internal/domain"
)

func newStockCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "stock",
		Aliases: []string{"forsale"},
		Short:   "Fetch and display the marketplace listing",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var records []domain.TradeRecord
			fetch := func(ctx context.Context) error {
				var err error
				records, err = app.trade.FetchStock(ctx)
				return err
			}

			if asJSON {
				if err := fetch(cmd.Context()); err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			if err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching marketplace stock...", fetch); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), market.RenderStock(records))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
